package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aydinemre/tubesum/internal/core/prompt"
	"github.com/aydinemre/tubesum/internal/core/provider"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>tubesum - YouTube Video Summarizer</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
fieldset { border: 1px solid #ccc; border-radius: 6px; margin-bottom: 1rem; }
label { display: block; margin: 0.5rem 0 0.2rem; font-weight: 600; }
input[type=text], select { width: 100%; padding: 0.4rem; box-sizing: border-box; }
button { margin-top: 1rem; padding: 0.5rem 1.5rem; }
#summary { white-space: pre-wrap; background: #f6f6f6; padding: 1rem; border-radius: 6px; }
#chat-log div { margin: 0.4rem 0; }
.user { color: #0b5394; }
.assistant { color: #38761d; }
.error { color: #b00; }
.muted { color: #888; }
</style>
</head>
<body>
<h1>YouTube Video Summarizer</h1>
<p>Type the URL and get the summary.</p>

<fieldset>
<legend>Summary Settings</legend>
<label for="url">Video URL</label>
<input type="text" id="url" placeholder="https://www.youtube.com/watch?v=...">
<label for="persona">Type of the summary</label>
<select id="persona"><option>First-Person</option><option selected>Third-Person</option></select>
<label for="length">Length of the summary</label>
<select id="length"><option selected>Short</option><option>Long</option></select>
<label for="provider">Model</label>
<select id="provider">
{{range .Providers}}<option value="{{.Name}}" {{if not .Available}}disabled{{end}}>{{.Display}}{{if not .Available}} (no API key){{end}}</option>
{{end}}</select>
<label for="language">Output language</label>
<select id="language">
{{range .Languages}}<option>{{.}}</option>
{{end}}</select>
<button id="summarize">Summarize</button>
</fieldset>

<div id="status" class="muted"></div>
<h2 id="summary-title" hidden>Video Summary</h2>
<div id="summary" hidden></div>
<audio id="audio" controls hidden src="/audio"></audio>
<p id="no-audio" class="muted" hidden>Audio unavailable.</p>

<h2>Ask about the video</h2>
<div id="chat-log"></div>
<input type="text" id="question" placeholder="Summarize the video first..." disabled>

<script>
const el = id => document.getElementById(id);

async function postJSON(url, body) {
  const resp = await fetch(url, {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(body),
  });
  return resp.json();
}

el("summarize").addEventListener("click", async () => {
  el("status").textContent = "Working...";
  const out = await postJSON("/api/summarize", {
    url: el("url").value,
    persona: el("persona").value,
    length: el("length").value,
    provider: el("provider").value,
    language: el("language").value,
  });
  if (out.code !== 200) {
    el("status").textContent = out.message;
    el("status").className = "error";
    return;
  }
  el("status").textContent = out.data.warning || "";
  el("status").className = "muted";
  el("summary-title").hidden = false;
  el("summary").hidden = false;
  el("summary").textContent = out.data.summary;
  el("audio").hidden = !out.data.audio;
  el("no-audio").hidden = out.data.audio;
  if (out.data.audio) { el("audio").src = "/audio?t=" + Date.now(); }
  el("question").disabled = false;
  el("question").placeholder = "Ask a question about the video";
  el("chat-log").innerHTML = "";
});

el("question").addEventListener("keydown", async (ev) => {
  if (ev.key !== "Enter" || !el("question").value) return;
  const q = el("question").value;
  el("question").value = "";
  const log = el("chat-log");
  log.insertAdjacentHTML("beforeend", "<div class=user></div>");
  log.lastChild.textContent = "you: " + q;
  const out = await postJSON("/api/chat", {question: q, provider: el("provider").value});
  const cls = out.code === 200 ? "assistant" : "error";
  log.insertAdjacentHTML("beforeend", "<div class=" + cls + "></div>");
  log.lastChild.textContent = out.code === 200 ? "assistant: " + out.data.answer : out.message;
});
</script>
</body>
</html>
`))

type providerView struct {
	Name      string
	Display   string
	Available bool
}

func (s *Server) handleIndex(c *gin.Context) {
	views := make([]providerView, 0, len(provider.List()))
	for _, info := range provider.List() {
		views = append(views, providerView{
			Name:      info.Name,
			Display:   info.Display,
			Available: provider.IsAvailable(info.Name),
		})
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(c.Writer, gin.H{
		"Providers": views,
		"Languages": prompt.Languages,
	}); err != nil {
		c.String(http.StatusInternalServerError, "template error")
	}
}
