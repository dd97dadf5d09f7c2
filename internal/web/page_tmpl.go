package web

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Callsight</title>
<style>
:root {
  --bg: #f7f9fc; --fg: #333d49; --card-bg: #ffffff; --border: #e0e6ed;
  --accent: #4a90e2; --muted: #6c757d;
  --positive: #10b981; --neutral: #9ca3af; --negative: #ef4444;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #0f172a; --fg: #e5e7eb; --card-bg: #111827; --border: #1f2937;
    --accent: #7ab8ff; --muted: #9ca3af;
  }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 2rem 1rem; max-width: 720px; margin: 0 auto; }
h1 { color: var(--accent); text-align: center; margin-bottom: 1.5rem; font-size: 1.5rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 12px; padding: 1.5rem; margin-bottom: 1.5rem; }
textarea { width: 100%; height: 160px; padding: .75rem; border-radius: 8px; border: 1px solid var(--border); font: inherit; resize: vertical; background: var(--bg); color: var(--fg); }
button { width: 100%; margin-top: 1rem; padding: .75rem; border: none; border-radius: 8px; background: var(--accent); color: #fff; font-size: 1rem; cursor: pointer; }
.error { color: var(--negative); margin-bottom: 1rem; }
.result h2 { border-bottom: 2px solid var(--border); padding-bottom: .5rem; margin-bottom: 1rem; font-size: 1.1rem; }
.result h3 { color: var(--accent); font-size: .9rem; margin: 1rem 0 .25rem; }
.badge { display: inline-block; padding: 4px 10px; border-radius: 999px; font-weight: 600; font-size: .9rem; }
.badge.positive { background: rgba(16,185,129,.15); color: var(--positive); }
.badge.neutral { background: rgba(156,163,175,.15); color: var(--neutral); }
.badge.negative { background: rgba(239,68,68,.15); color: var(--negative); }
.logfile { margin-top: 1.5rem; font-size: .8rem; color: var(--muted); }
</style>
</head>
<body>
<h1>Callsight — Transcript Analysis</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<div class="card">
<form action="/analyze" method="post">
<label for="transcript"><strong>Paste the call transcript below:</strong></label><br><br>
<textarea id="transcript" name="transcript" required placeholder="e.g., Hi, I was trying to book a slot yesterday but the payment failed...">{{.Transcript}}</textarea>
<button type="submit">Analyze Transcript</button>
</form>
</div>
{{if .Summary}}
<div class="card result">
<h2>Analysis Result</h2>
<h3>Summary</h3>
<p>{{.Summary}}</p>
<h3>Sentiment</h3>
<p><span class="badge {{.BadgeClass}}">{{.Sentiment}}</span></p>
<p class="logfile">Data saved to {{.LogFile}}</p>
</div>
{{end}}
</body>
</html>
`
