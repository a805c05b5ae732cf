package webform

import "html/template"

const pageName = "form.html"

var pageTemplate = template.Must(template.New(pageName).Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Report uploader</title></head>
<body>
<main>
<h1>Report uploader</h1>

<form method="post" action="/files" enctype="multipart/form-data">
  <label for="files">Select files</label>
  <input id="files" type="file" name="files" multiple>
  <button type="submit" {{if .Loading}}disabled{{end}}>Add</button>
</form>

{{if .Files}}
<ul>
  {{range .Files}}
  <li>{{.Name}}
    <form method="post" action="/files/{{.ID}}/delete" style="display:inline">
      <button type="submit" {{if $.Loading}}disabled{{end}}>Remove</button>
    </form>
  </li>
  {{end}}
</ul>
{{end}}
<small>Select up to {{.MaxFiles}} files</small>

<form method="post" action="/submit">
  {{if .Reporting}}
  <label for="month">Month</label>
  <select id="month" name="month">
    <option value="">--</option>
    {{range .Months}}<option value="{{.}}" {{if eq . $.Month}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{end}}
  <button type="submit" {{if .Loading}}disabled{{end}}>{{if .Loading}}Uploading...{{else}}Upload files{{end}}</button>
</form>

{{if .Error}}<p role="alert">{{.Error}}</p>{{end}}

{{if eq .Status "succeeded"}}
  {{if .ReportURL}}
  <p><a href="{{.ReportURL}}" download>Download report</a></p>
  {{else}}
  <p role="status">Files uploaded successfully!</p>
  {{end}}
{{end}}

<form method="post" action="/reset">
  <button type="submit" {{if .Loading}}disabled{{end}}>Reset</button>
</form>
</main>
</body>
</html>
`))

// Templates returns the page template for gin's HTML renderer.
func Templates() *template.Template {
	return pageTemplate
}
