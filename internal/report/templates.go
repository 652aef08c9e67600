package report

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

var htmlTemplate = htmltemplate.Must(htmltemplate.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Library Catalog Report</title>
<style>
body { font-family: 'Segoe UI', Tahoma, sans-serif; margin: 0; padding: 20px; background: #f4f4f8; color: #333; }
.container { max-width: 1100px; margin: 0 auto; background: #fff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 12px rgba(0,0,0,0.1); }
h1 { color: #4a4a8a; }
h2 { color: #4a4a8a; border-bottom: 2px solid #4a4a8a; padding-bottom: 6px; }
.stats { display: flex; flex-wrap: wrap; gap: 16px; }
.stat { background: #4a4a8a; color: #fff; border-radius: 6px; padding: 18px; min-width: 150px; text-align: center; }
.stat b { display: block; font-size: 1.6em; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { padding: 8px 10px; border-bottom: 1px solid #ddd; text-align: left; }
th { background: #eee; }
.footer { margin-top: 24px; color: #888; font-size: 0.85em; }
</style>
</head>
<body>
<div class="container">
<h1>Library Catalog Report</h1>
<p>Generated at {{.GeneratedAt}}</p>

<h2>Statistics</h2>
<div class="stats">
<div class="stat"><b>{{.Stats.TotalBooks}}</b>books</div>
<div class="stat"><b>{{.Stats.TotalAuthors}}</b>authors</div>
<div class="stat"><b>{{printf "%.2f" .Stats.AveragePrice}}</b>average price</div>
<div class="stat"><b>{{printf "%.2f" .Stats.MostExpensive}}</b>most expensive</div>
<div class="stat"><b>{{printf "%.2f" .Stats.Cheapest}}</b>cheapest</div>
</div>

<h2>Top Authors</h2>
<table>
<tr><th>Author</th><th>Books</th></tr>
{{range .TopAuthors}}<tr><td>{{.Author}}</td><td>{{.Count}}</td></tr>
{{else}}<tr><td colspan="2">No books catalogued.</td></tr>
{{end}}</table>

<h2>Books by Publication Year</h2>
<table>
<tr><th>Year</th><th>Books</th></tr>
{{range .Years}}<tr><td>{{.Year}}</td><td>{{.Count}}</td></tr>
{{else}}<tr><td colspan="2">No books catalogued.</td></tr>
{{end}}</table>

<h2>Full Catalog</h2>
<table>
<tr><th>ID</th><th>Title</th><th>Author</th><th>Year</th><th>Price</th><th>Added</th></tr>
{{range .Books}}<tr><td>{{.ID}}</td><td>{{.Title}}</td><td>{{.Author}}</td><td>{{.PublicationYear}}</td><td>{{printf "%.2f" .Price}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td></tr>
{{else}}<tr><td colspan="6">No books catalogued.</td></tr>
{{end}}</table>

<p class="footer">bibliotek catalog report</p>
</div>
</body>
</html>
`))

var textTemplate = texttemplate.Must(texttemplate.New("report").Parse(
	`LIBRARY CATALOG REPORT
Generated at {{.GeneratedAt}}

STATISTICS
  Books:          {{.Stats.TotalBooks}}
  Authors:        {{.Stats.TotalAuthors}}
  Average price:  {{printf "%.2f" .Stats.AveragePrice}}
  Most expensive: {{printf "%.2f" .Stats.MostExpensive}}
  Cheapest:       {{printf "%.2f" .Stats.Cheapest}}

TOP AUTHORS
{{range .TopAuthors}}  {{.Author}} ({{.Count}})
{{else}}  No books catalogued.
{{end}}
BOOKS BY PUBLICATION YEAR
{{range .Years}}  {{.Year}}: {{.Count}}
{{else}}  No books catalogued.
{{end}}
FULL CATALOG
{{range .Books}}  [{{.ID}}] {{.Title}} - {{.Author}} ({{.PublicationYear}}) {{printf "%.2f" .Price}}
{{else}}  No books catalogued.
{{end}}`))
