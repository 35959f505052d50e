package colour

import (
	"bytes"
	"fmt"
	"html/template"
)

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>gwal colorscheme</title>
<style>
body { background: {{.Background}}; color: {{.Foreground}}; font-family: monospace; padding: 2em; }
.row { display: flex; gap: 0.5em; margin-bottom: 0.5em; }
.swatch { width: 6em; height: 4em; display: flex; align-items: flex-end; padding: 0.25em; box-sizing: border-box; }
</style>
</head>
<body>
{{range .Rows}}<div class="row">
{{range .}}<div class="swatch" style="background: {{.Hex}}">{{.Label}}</div>
{{end}}</div>
{{end}}</body>
</html>
`))

type previewSwatch struct {
	Label string
	Hex   template.CSS
}

// HTMLPreview renders the scheme as a standalone HTML page with the dark and
// light halves as two rows of swatches on the scheme's own background.
func (cs Colorscheme) HTMLPreview() ([]byte, error) {
	rows := make([][]previewSwatch, 2)
	for row, half := range [][8]RGB{cs.Dark(), cs.Light()} {
		for col, c := range half {
			rows[row] = append(rows[row], previewSwatch{
				Label: fmt.Sprintf("t%d", row*8+col),
				Hex:   template.CSS(c.Hex()),
			})
		}
	}

	data := struct {
		Background template.CSS
		Foreground template.CSS
		Rows       [][]previewSwatch
	}{
		Background: template.CSS(cs.Background().Hex()),
		Foreground: template.CSS(cs.Foreground().Hex()),
		Rows:       rows,
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.Bytes(), nil
}
