package notebook

import (
	"html/template"
	"io"
)

var launchBox = template.Must(template.New("launch").Parse(`
<div style="padding: 15px; border: 2px solid #f0ad4e; border-radius: 8px; background-color: #fef9f0; margin: 20px 0;">
  <div style="font-family: sans-serif; margin-bottom: 12px; color: #333; font-size: 1.1em;">
    <strong>&#9888;&#65039; IMPORTANT: Action Required</strong>
  </div>
  <div style="font-family: sans-serif; margin-bottom: 15px; color: #333; line-height: 1.5;">
    The ADK web UI is <strong>not running yet</strong>. You must start it in the next cell.
    <ol style="margin-top: 10px; padding-left: 20px;">
      <li style="margin-bottom: 5px;"><strong>Run the next cell</strong> (the one with <code>!adk web ...</code>) to start the ADK web UI.</li>
      <li style="margin-bottom: 5px;">Wait for that cell to show it is "Running" (it will not "complete").</li>
      <li>Once it's running, <strong>return to this button</strong> and click it to open the UI.</li>
    </ol>
    <em style="font-size: 0.9em; color: #555;">(If you click the button before running the next cell, you will get a 500 error.)</em>
  </div>
  <a href="{{.URL}}" target="_blank" style="display: inline-block; background-color: #1a73e8; color: white; padding: 10px 20px; text-decoration: none; border-radius: 25px; font-family: sans-serif; font-weight: 500; box-shadow: 0 2px 5px rgba(0,0,0,0.2);">
    Open ADK Web UI (after running cell below) &#8599;
  </a>
</div>
`))

// RenderLaunchBox writes the HTML panel that tells the user to start
// `adk web` and links to p.URL.
func RenderLaunchBox(w io.Writer, p Proxy) error {
	return launchBox.Execute(w, p)
}
