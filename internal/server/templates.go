package server

import "html/template"

var dashboardPageTemplate = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{ .title }}</title>
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js" charset="utf-8"></script>
  <style>
    :root {
      --bg: #ffffff;
      --ink: #0f172a;
      --muted: #64748b;
      --border: #e2e8f0;
    }
    body {
      margin: 0;
      background: var(--bg);
      color: var(--ink);
      font-family: "Open Sans", verdana, arial, sans-serif;
    }
    .page-shell { max-width: 1340px; margin: 0 auto; padding: 12px 20px; }
    h4 { margin: 8px 0 4px; font-size: 18px; }
    #graph { min-height: 700px; }
    .checklist {
      display: flex;
      flex-wrap: wrap;
      gap: 6px 16px;
      padding: 8px 0;
      border-top: 1px solid var(--border);
    }
    .checklist label { display: inline-flex; align-items: center; gap: 4px; cursor: pointer; }
    .citation { color: var(--muted); font-size: 12px; margin-top: 12px; }
  </style>
</head>
<body>
  <div class="page-shell">
    <h4>{{ .title }}</h4>
    <div id="graph"></div>
    <div id="checklist" class="checklist">
      {{ range .options }}
      <label><input type="checkbox" name="region" value="{{ .Value }}"{{ if .Checked }} checked{{ end }} />{{ .Value }}</label>
      {{ end }}
    </div>
    {{ if .citation }}<p class="citation">{{ .citation }}</p>{{ end }}
  </div>
  <script>
    const graph = document.getElementById("graph");
    const boxes = Array.from(document.querySelectorAll("#checklist input"));
    let hoverData = null;

    function selectedRegions() {
      return boxes.filter((el) => el.checked).map((el) => el.value);
    }

    function draw(fig) {
      return Plotly.react(graph, fig.data, fig.layout);
    }

    async function refresh() {
      const res = await fetch("/figure", {
        method: "POST",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ regions: selectedRegions(), hover_data: hoverData }),
      });
      if (!res.ok) {
        return;
      }
      await draw(await res.json());
    }

    draw({{ .figure_json }}).then(() => {
      graph.on("plotly_hover", (ev) => {
        const name = ev.points[0] && ev.points[0].customdata && ev.points[0].customdata[0];
        const prev = hoverData && hoverData.points[0].customdata[0];
        hoverData = { points: ev.points.map((p) => ({ customdata: p.customdata })) };
        if (name !== prev) {
          refresh();
        }
      });
    });
    boxes.forEach((el) => el.addEventListener("change", refresh));
  </script>
</body>
</html>
`))
