package web

const pageTemplateName = "index.html"

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Log Triage</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; background: #0f172a; color: #e2e8f0; }
.card { background: #1e293b; border-radius: 8px; padding: 1rem 1.5rem; margin-bottom: 1rem; }
.grid { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; }
textarea { width: 100%; height: 14rem; font-family: monospace; }
.badge { padding: .25rem .75rem; border-radius: 999px; font-weight: bold; }
.badge-high { background: #dc2626; }
.badge-med { background: #d97706; }
.badge-low { background: #16a34a; }
.alert.error { background: #7f1d1d; padding: .75rem 1rem; border-radius: 8px; margin-bottom: 1rem; }
.chip { background: #334155; border-radius: 4px; padding: .1rem .5rem; margin-right: .25rem; }
pre.code { background: #020617; padding: .75rem; overflow-x: auto; }
table { width: 100%; border-collapse: collapse; }
td, th { text-align: left; padding: .25rem .5rem; border-bottom: 1px solid #334155; }
.k { color: #94a3b8; font-size: .85rem; }
</style>
</head>
<body>
<header>
  <h1>Log Triage</h1>
  <p>Paste logs or upload a file to get severity, a root cause hypothesis, next steps, grep queries and a ticket summary.</p>
  {{if .Result}}{{if .Result.Severity}}<span class="{{.Badge}}">{{.Result.Severity}}</span>{{end}}{{end}}
</header>

<div class="grid">
  <form class="card" method="post" action="/analyze/text">
    <h2>Paste Log</h2>
    <textarea name="logContent" maxlength="{{.MaxChars}}" placeholder="Paste log here (max {{.MaxChars}} chars)...">{{.LogContent}}</textarea>
    <button type="submit">Analyze (Text)</button>
    <button type="button" onclick="this.form.logContent.value=''" {{if not .CanClear}}disabled{{end}}>Clear</button>
  </form>

  <form class="card" method="post" action="/analyze/file" enctype="multipart/form-data">
    <h2>Upload Log File</h2>
    <input type="file" name="file" accept="{{.Accept}}" required>
    <div class="k">Accepted: <b>.log</b>, <b>.txt</b> (server size limit applies){{if .FileName}} · last upload: {{.FileName}}{{end}}</div>
    <button type="submit">Analyze (File)</button>
  </form>
</div>

{{if .Error}}<div class="alert error"><b>Error:</b> {{.Error}}</div>{{end}}

{{with .Result}}
<section class="card" id="findings">
  <h2>Findings</h2>
  <div class="k">Possible root cause</div>
  <div>{{.PossibleRootCause}}</div>
  <div class="k">Detected issues</div>
  <ul>{{range .DetectedIssues}}<li>{{.}}</li>{{end}}</ul>
  {{if $.Panels.DetectedIDs}}
  <div class="k">Detected IDs</div>
  <div>{{range .DetectedIDs}}<span class="chip">{{.}}</span>{{end}}</div>
  {{end}}
</section>

<section class="card" id="signatures">
  <h2>Top Error Signatures</h2>
  <table>
    <thead><tr><th>Exception</th><th>Message example</th><th>Count</th></tr></thead>
    <tbody>{{range .TopErrorSignatures}}<tr><td><code>{{.ExceptionType}}</code></td><td>{{.Message}}</td><td>{{.Count}}</td></tr>{{end}}</tbody>
  </table>
</section>

<section class="card" id="next-steps">
  <h2>Next Steps</h2>
  <ol>{{range .NextSteps}}<li>{{.}}</li>{{end}}</ol>
</section>

{{if $.Panels.Grep}}
<section class="card" id="grep">
  <h2>Suggested grep queries</h2>
  <pre class="code">{{$.GrepText}}</pre>
  <button type="button" data-copy="{{$.GrepText}}">Copy grep block</button>
</section>
{{end}}

{{if $.Panels.Ticket}}
<section class="card" id="ticket">
  <h2>Ticket Summary</h2>
  {{if $.Panels.TicketTitle}}<div class="k">Title</div><div><b>{{.TicketTitle}}</b></div>{{end}}
  {{if $.Panels.TicketBody}}
  <div class="k">Body</div>
  <pre class="code">{{.TicketBody}}</pre>
  <button type="button" data-copy="{{$.TicketText}}">Copy ticket</button>
  {{end}}
</section>
{{end}}

<section class="card" id="telemetry">
  <h2>AI / Telemetry</h2>
  <div class="k">aiUsed</div><div>{{$.Telemetry.AIUsed}}</div>
  <div class="k">aiProvider</div><div>{{$.Telemetry.AIProvider}}</div>
  <div class="k">aiLatencyMs</div><div>{{$.Telemetry.AILatencyMs}}</div>
  <div class="k">aiError</div><div>{{$.Telemetry.AIError}}</div>
</section>
{{end}}

<script>
document.querySelectorAll("[data-copy]").forEach(function (btn) {
  btn.addEventListener("click", function () {
    navigator.clipboard.writeText(btn.getAttribute("data-copy")).then(function () {
      alert("Copied");
    });
  });
});
</script>
</body>
</html>
`
