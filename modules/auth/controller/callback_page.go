package controller

import (
	"bytes"
	"html/template"
)

var callbackPage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{if .Error}}Sign-in failed{{else}}Signing in{{end}}</title>
{{if not .Error}}<meta http-equiv="refresh" content="{{.DelaySeconds}};url={{.HomeURL}}">{{end}}
</head>
<body>
{{if .Error}}
<h1>Authentication error</h1>
<p>{{.Error}}</p>
<p><a href="{{.HomeURL}}">Return home</a></p>
{{else}}
<h1>Welcome{{if .Name}}, {{.Name}}{{end}}</h1>
<p>Signed in successfully. Redirecting...</p>
{{end}}
</body>
</html>
`))

type callbackView struct {
	Name         string
	Error        string
	HomeURL      string
	DelaySeconds int
}

func renderCallback(v callbackView) (string, error) {
	var buf bytes.Buffer
	if err := callbackPage.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
