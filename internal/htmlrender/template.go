package htmlrender

// indexHTML is the landing page template, grounded on original_source's
// html.rs structure (title, Getting started section, Available crates
// table, footer) but rendered with stdlib html/template rather than a
// markup-building library, and without the asset bundling (CSS/JS) that
// spec.md §1 explicitly places out of scope.
const indexHTML = `<!DOCTYPE html>
<html lang="en-US">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Margo Crate Registry</title>
<style>
  body { font-family: sans-serif; margin: 0; }
  header { background: #3b2f63; color: #fde8df; padding: 0.5rem 1rem; }
  section { padding: 0.5rem 1rem; }
  table { width: 100%; table-layout: fixed; border-collapse: collapse; }
  th, td { text-align: left; padding: 0.25rem; }
  tr:hover { background: #f3d9b1; }
  pre { background: #fbe0e0; border: 1px solid black; padding: 0.5rem; overflow-x: auto; }
  footer { text-align: center; padding: 1rem; border-top: 1px dashed #3b2f63; }
</style>
</head>
<body>
<header><h1>Margo Crate Registry</h1></header>

<section id="getting-started">
<h2>Getting started</h2>
<ol>
<li>Add the registry definition to your <code>.cargo/config.toml</code>:
<pre>{{.ConfigStanza}}</pre>
</li>
<li>Add your dependency to your project:
<pre>{{.CargoAddLine}}</pre>
</li>
</ol>
<p>For complete details, check the
<a href="https://doc.rust-lang.org/cargo/reference/registries.html#using-an-alternate-registry">Cargo documentation</a>.</p>
</section>

<section id="crates">
<h2>Available crates</h2>
<table>
<thead><tr><th>Name</th><th>Versions</th></tr></thead>
<tbody>
{{range .Crates}}
<tr>
<td>{{.Name}}<br><small>{{.PURL}}</small></td>
<td>
<select name="version" onchange="location.href=this.value">
{{range .Versions}}<option value="{{.URL}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{end}}
</select>
<noscript>
<ul>
{{range .Versions}}<li><a href="{{.URL}}">{{.Label}}</a></li>
{{end}}
</ul>
</noscript>
</td>
</tr>
{{end}}
</tbody>
</table>
</section>

<footer>
Powered by <a href="https://github.com/integer32llc/margo">Margo</a>
</footer>
</body>
</html>
`
