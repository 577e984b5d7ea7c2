package model

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// TestDataXML renders the group as the test-data document published alongside
// the file measures: a <tests-details> wrapper with one <testcase> per case.
// Failing and erroring cases carry a nested <failure>/<error> element whose
// body is the escaped stack trace inside a CDATA section.
func (g *TestFileGroup) TestDataXML() string {
	var sb strings.Builder
	sb.Grow(256 * (len(g.Cases) + 1))
	sb.WriteString("<tests-details>")
	for i := range g.Cases {
		writeTestCaseXML(&sb, &g.Cases[i])
	}
	sb.WriteString("</tests-details>")
	return sb.String()
}

func writeTestCaseXML(sb *strings.Builder, tc *TestCase) {
	sb.WriteString(`<testcase status="`)
	sb.WriteString(tc.Status.MeasureKey())
	sb.WriteString(`" time="`)
	sb.WriteString(strconv.FormatInt(tc.DurationMillis, 10))
	sb.WriteString(`" name="`)
	sb.WriteString(html.EscapeString(tc.Name))
	sb.WriteString(`"`)

	var detail string
	switch tc.Status {
	case StatusError:
		detail = "error"
	case StatusFailed:
		detail = "failure"
	default:
		sb.WriteString("/>")
		return
	}

	sb.WriteString("><")
	sb.WriteString(detail)
	sb.WriteString(` message="`)
	sb.WriteString(html.EscapeString(strings.ReplaceAll(tc.Message, "\n\t", "")))
	sb.WriteString(`"><![CDATA[`)
	sb.WriteString(html.EscapeString(tc.StackTrace))
	sb.WriteString("]]></")
	sb.WriteString(detail)
	sb.WriteString("></testcase>")
}
