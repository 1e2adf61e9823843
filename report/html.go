// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"
)

const htmlSource = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Overhead scaling</title>
<style>
table.overhead { border-collapse: collapse; margin-bottom: 1em; }
table.overhead th, table.overhead td { padding: 2px 8px; border-bottom: 1px solid #ddd; }
table.overhead td.num { text-align: right; font-variant-numeric: tabular-nums; }
p.note { color: #666; font-size: smaller; margin: 0; }
</style>
</head>
<body>
{{- range .}}
<h2>{{.Name}}</h2>
<table class="overhead">
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr>{{range .}}{{if .Numeric}}<td class="num">{{else}}<td>{{end}}{{.Text}}</td>{{end}}</tr>
{{- end}}
</table>
{{- range .Notes}}
<p class="note">{{.}}</p>
{{- end}}
{{- end}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlSource))

// WriteHTML writes tables as a standalone HTML page.
func WriteHTML(w io.Writer, tables []*Table) error {
	return htmlTemplate.Execute(w, tables)
}
