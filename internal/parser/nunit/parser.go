package nunit

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/filereader"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser"
)

// NUnitParser implements parser.IParser for NUnit 2.x XML result files.
type NUnitParser struct {
	fileReader FileReader
}

// NewNUnitParser creates a parser reading files through fileReader. A nil
// reader reads from disk.
func NewNUnitParser(fileReader FileReader) parser.IParser {
	if fileReader == nil {
		fileReader = filereader.ReportReader{}
	}
	return &NUnitParser{fileReader: fileReader}
}

func init() {
	parser.RegisterParser(NewNUnitParser(nil))
}

// Name returns the name of the parser.
func (np *NUnitParser) Name() string {
	return "NUnit"
}

// SupportsFile checks if the given file is likely an NUnit 2.x result file.
// An .xml file whose content yields no start element is accepted so that Parse
// reports it as malformed; a document with another root element is not.
func (np *NUnitParser) SupportsFile(filePath string) bool {
	if !strings.HasSuffix(strings.ToLower(filePath), ".xml") {
		return false
	}
	data, err := np.fileReader.ReadReport(filePath)
	if err != nil {
		return false
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = filereader.CharsetReader
	for {
		token, err := decoder.Token()
		if err != nil {
			return true
		}
		if se, ok := token.(xml.StartElement); ok {
			return se.Name.Local == rootElement
		}
	}
}

// Parse reads an NUnit result file and groups its cases by source file.
func (np *NUnitParser) Parse(ctx context.Context, filePath string, kind model.TestKind, config parser.ParserConfig) (*parser.ParserResult, error) {
	data, err := np.fileReader.ReadReport(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read NUnit report %s: %w", filePath, err)
	}
	result, err := ParseReport(ctx, filePath, data, kind, config)
	if err != nil {
		return nil, err
	}
	result.ParserName = np.Name()
	return result, nil
}

// ParseReport walks an in-memory NUnit document. reportName only labels logs
// and errors. The returned error is a *parser.MalformedReportError,
// *parser.ContextCorruptionError, *parser.UnknownStatusError or a context
// error; no partial result is returned with it.
func ParseReport(ctx context.Context, reportName string, data []byte, kind model.TestKind, config parser.ParserConfig) (*parser.ParserResult, error) {
	if config == nil || config.Resolver() == nil {
		return nil, errors.New("nunit: parser config must provide a name resolver")
	}
	logger := config.Logger()
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("parser", "NUnit")
	logger.Debug("Parsing NUnit report.", "report", reportName, "kind", kind.String())

	w := newWalker(reportName, data, kind, config, logger)
	if err := w.walk(ctx); err != nil {
		return nil, err
	}

	if w.unresolved > 0 {
		logger.Info("Some test cases could not be matched to a source file.", "report", reportName, "unresolved", w.unresolved)
	}
	return &parser.ParserResult{
		Groups:          w.groups,
		UnresolvedCases: w.unresolved,
		ParserName:      "NUnit",
	}, nil
}
