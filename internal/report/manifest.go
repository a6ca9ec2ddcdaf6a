package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/wikigrab/internal/model"
)

// ManifestWriter outputs grab reports in Markdown format.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type ManifestWriter struct {
	// output receives the rendered manifest.
	output io.Writer
}

// NewManifestWriter creates a ManifestWriter that outputs to the given writer.
func NewManifestWriter(output io.Writer) *ManifestWriter {
	return &ManifestWriter{output: output}
}

// Write outputs the full manifest in Markdown format.
// It returns the rendered length in bytes.
func (w *ManifestWriter) Write(report *model.GrabReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeContent(md, report)
	w.writeImages(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the manifest header with run information.
func (w *ManifestWriter) writeHeader(md *markdown.Markdown, report *model.GrabReport) {
	md.H1("Wiki Grab Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Title", report.Title},
			{"Source", "`" + report.SourceURL + "`"},
			{"Date", report.DateGrabbed.Format("2006-01-02 15:04:05 MST")},
			{"Images Found", strconv.Itoa(len(report.Images))},
			{"Images Saved", strconv.Itoa(len(report.Saved))},
			{"Status", w.statusText(report)},
		},
	})
	md.PlainText("")
}

// statusText returns the status cell based on report state.
func (w *ManifestWriter) statusText(report *model.GrabReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	if report.ContentError != "" {
		return "⚠️ Partial (content failed)"
	}
	return "✅ Complete"
}

// writeContent writes the content artifacts section.
func (w *ManifestWriter) writeContent(md *markdown.Markdown, report *model.GrabReport) {
	md.H2("Content")
	md.PlainText("")

	if report.ContentError != "" {
		md.Warningf("Content could not be retrieved: %s", report.ContentError)
		md.PlainText("")
		return
	}

	paths := make([]string, 0, 2)
	if report.TextPath != "" {
		paths = append(paths, "Plain text: `"+report.TextPath+"`")
	}
	if report.HTMLPath != "" {
		paths = append(paths, "Raw HTML: `"+report.HTMLPath+"`")
	}
	if len(paths) == 0 {
		md.PlainText("No content artifacts were written.")
		md.PlainText("")
		return
	}

	md.BulletList(paths...)
	md.PlainText("")
}

// writeImages writes the saved images table.
func (w *ManifestWriter) writeImages(md *markdown.Markdown, report *model.GrabReport) {
	md.H2("Images")
	md.PlainText("")

	if !report.DownloadImages {
		md.PlainText("Image download was not requested.")
		md.PlainText("")
		return
	}

	if len(report.Saved) == 0 {
		md.PlainText("No images were downloaded.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(report.Saved))
		for i, img := range report.Saved {
			rows[i] = []string{
				img.Filename,
				fmt.Sprintf("%dx%d", img.Width, img.Height),
				orDash(img.Format),
				orDash(img.Metadata.Camera()),
				orDash(img.Metadata.DateTime),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"File", "Dimensions", "Format", "Camera", "Taken"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if report.FailedDownloads > 0 {
		md.Warningf("%d image(s) were located but could not be downloaded.", report.FailedDownloads)
		md.PlainText("")
	}
}

// writeFooter writes the manifest footer.
func (w *ManifestWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [wikigrab](https://github.com/nao1215/wikigrab)*")
}

// orDash substitutes "-" for empty table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
