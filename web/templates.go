package web

import (
	"html/template"
	"time"

	"boilerref/domain/catalog"
)

// Templates are inline so the binary needs no asset directory. One parsed
// template per page, assembled from a shared layout.

func parseTemplates() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"selected": func(set []string, v string) bool {
			for _, s := range set {
				if s == v {
					return true
				}
			}
			return false
		},
		"num": catalog.FormatOptional,
		"ts": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
	}

	pages := map[string]string{
		"dashboard": layoutHead + dashboardBody + layoutFoot,
		"audit":     layoutHead + auditBody + layoutFoot,
		"raw":       layoutHead + rawBody + layoutFoot,
	}

	out := make(map[string]*template.Template, len(pages))
	for name, text := range pages {
		tmpl, err := template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return nil, err
		}
		out[name] = tmpl
	}
	return out, nil
}

const layoutHead = `<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>` + baseCSS + `</style>
</head>
<body>
<header>
  <h1>Справочник поверхностей нагрева котлов</h1>
  <nav>
    <a href="/">Каталог</a>
    <a href="/raw">JSON</a>
    <a href="/audit">Журнал</a>
    <a href="/export.csv">Экспорт CSV</a>
  </nav>
</header>
<main>
{{if .Message}}<div class="alert alert-ok">{{.Message}}</div>{{end}}
{{if .Error}}<div class="alert alert-error">{{.Error}}</div>{{end}}
`

const layoutFoot = `
</main>
</body>
</html>`

const dashboardBody = `
<section class="cards">
  <div class="card"><div class="card-value">{{.Stats.Boilers}}</div><div class="card-label">котлов</div></div>
  <div class="card"><div class="card-value">{{.Stats.Surfaces}}</div><div class="card-label">поверхностей</div></div>
  <div class="card"><div class="card-value">{{len .Rows}}</div><div class="card-label">строк в выборке</div></div>
</section>

<form method="GET" action="/" class="filters">
  <input type="search" name="q" value="{{.Query}}" placeholder="Поиск: котёл, сталь, категория...">
  <select name="station" multiple size="4" title="Станция">
    {{range .Options.Stations}}<option value="{{.}}" {{if selected $.Sel.Stations .}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  <select name="type" multiple size="4" title="Тип котла">
    {{range .Options.BoilerTypes}}<option value="{{.}}" {{if selected $.Sel.BoilerTypes .}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  <select name="steel" multiple size="4" title="Сталь">
    {{range .Options.Steels}}<option value="{{.}}" {{if selected $.Sel.Steels .}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  <select name="category" multiple size="4" title="Категория">
    {{range .Options.Categories}}<option value="{{.}}" {{if selected $.Sel.Categories .}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  <select name="system" multiple size="4" title="Система">
    {{range .Options.Systems}}<option value="{{.}}" {{if selected $.Sel.Systems .}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  <button type="submit">Применить</button>
  <a href="/" class="btn-link">Сбросить</a>
</form>

<table>
  <thead>
    <tr>
      <th>Котёл</th><th>Станция</th><th>Тип</th><th>Поверхность</th><th>Синонимы</th>
      <th>Сталь</th><th>P, кгс/см²</th><th>T, °C</th><th>Ø, мм</th><th>S, мм</th>
      <th>Категория</th><th>Система</th><th>Элемент</th><th>Примечания</th>
    </tr>
  </thead>
  <tbody>
    {{range .Rows}}
    <tr>
      <td>{{if .BoilerName}}{{.BoilerName}}{{else}}{{.BoilerID}}{{end}}</td>
      <td>{{.Station}}</td>
      <td>{{.BoilerType}}</td>
      <td>{{.Surface}}</td>
      <td>{{.Aliases}}</td>
      <td>{{.Steel}}</td>
      <td class="n">{{num .Pressure}}</td>
      <td class="n">{{num .Temperature}}</td>
      <td class="n">{{num .OuterDiameter}}</td>
      <td class="n">{{num .WallThickness}}</td>
      <td>{{.Category}}</td>
      <td>{{.System}}</td>
      <td>{{.Component}}</td>
      <td>{{.Notes}}</td>
    </tr>
    {{else}}
    <tr><td colspan="14" class="empty">Нет записей</td></tr>
    {{end}}
  </tbody>
</table>

<section class="panels">
  <div class="panel">
    <h2>Добавить котёл</h2>
    <form method="POST" action="/boilers">
      <label>ID <input name="id" required></label>
      <label>Название <input name="name"></label>
      <label>Станция <input name="station"></label>
      <label>Тип <input name="boiler_type"></label>
      <label>Расположение <input name="location"></label>
      <label>Параметры <input name="parameters"></label>
      <label>Примечания <input name="notes"></label>
      <button type="submit">Добавить</button>
    </form>
  </div>

  <div class="panel">
    <h2>Добавить поверхность</h2>
    <form method="POST" action="/surfaces">
      <label>Котёл
        <select name="boiler_id" required>
          {{range .Boilers}}<option value="{{.ID}}">{{if .Name}}{{.Name}}{{else}}{{.ID}}{{end}}</option>{{end}}
        </select>
      </label>
      <label>Название <input name="name" required></label>
      <label>Синонимы (через запятую) <input name="aliases"></label>
      <label>Сталь <input name="steel"></label>
      <label>Давление <input name="pressure" type="number" step="any" min="0"></label>
      <label>Температура <input name="temperature" type="number" step="any" min="0"></label>
      <label>Диаметр <input name="outer_diameter" type="number" step="any" min="0"></label>
      <label>Толщина стенки <input name="wall_thickness" type="number" step="any" min="0"></label>
      <label>Категория <input name="category"></label>
      <label>Система <input name="system"></label>
      <label>Секция <input name="section"></label>
      <label>Группа <input name="surface_group"></label>
      <label>Примечания <input name="notes"></label>
      <button type="submit">Добавить</button>
    </form>
  </div>

  <div class="panel">
    <h2>Импорт JSON</h2>
    <form method="POST" action="/import" enctype="multipart/form-data">
      <label>Файл каталога <input type="file" name="file" accept="application/json" required></label>
      <button type="submit">Импортировать</button>
    </form>
    <p class="hint">Дубликаты по id котла и названию поверхности пропускаются.</p>
  </div>

  <div class="panel">
    <h2>Удалить котёл</h2>
    <form method="POST" action="/delete">
      <label>Котёл
        <select name="boiler_id" required>
          {{range .Boilers}}<option value="{{.ID}}">{{if .Name}}{{.Name}}{{else}}{{.ID}}{{end}}</option>{{end}}
        </select>
      </label>
      <button type="submit" class="danger">Удалить</button>
    </form>
    <form method="POST" action="/reset" onsubmit="return confirm('Очистить весь каталог?')">
      <button type="submit" class="danger">Очистить каталог</button>
    </form>
  </div>
</section>
`

const auditBody = `
<h2>Журнал изменений</h2>
<table>
  <thead>
    <tr><th>Время</th><th>Действие</th><th>Котёл</th><th>Записей</th><th>Пользователь</th><th>Детали</th></tr>
  </thead>
  <tbody>
    {{range .Entries}}
    <tr>
      <td>{{ts .At}}</td>
      <td>{{.Action}}</td>
      <td>{{.BoilerID}}</td>
      <td class="n">{{.Records}}</td>
      <td>{{.Actor}}</td>
      <td>{{.Detail}}</td>
    </tr>
    {{else}}
    <tr><td colspan="6" class="empty">Журнал пуст</td></tr>
    {{end}}
  </tbody>
</table>
`

const rawBody = `
<h2>Документ каталога</h2>
<pre class="raw">{{.Raw}}</pre>
`

const baseCSS = `
* { box-sizing: border-box; }
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6f8; color: #1d2129; }
header { background: #243447; color: #fff; padding: 14px 24px; display: flex; justify-content: space-between; align-items: center; flex-wrap: wrap; }
header h1 { font-size: 18px; margin: 0; }
header nav a { color: #cfd8e3; margin-left: 16px; text-decoration: none; }
header nav a:hover { color: #fff; }
main { padding: 24px; max-width: 1400px; margin: 0 auto; }
.alert { padding: 10px 14px; border-radius: 6px; margin-bottom: 16px; }
.alert-ok { background: #e6f4ea; color: #1e6b30; }
.alert-error { background: #fde8e8; color: #9b1c1c; }
.cards { display: flex; gap: 16px; margin-bottom: 20px; }
.card { background: #fff; border-radius: 8px; padding: 16px 24px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
.card-value { font-size: 28px; font-weight: 600; }
.card-label { color: #6b7280; font-size: 13px; }
.filters { display: flex; gap: 10px; flex-wrap: wrap; align-items: flex-start; margin-bottom: 20px; }
.filters input[type=search] { flex: 1 1 260px; padding: 8px 10px; border: 1px solid #d1d5db; border-radius: 6px; }
.filters select { border: 1px solid #d1d5db; border-radius: 6px; min-width: 130px; }
.filters button { padding: 8px 16px; border: 0; border-radius: 6px; background: #2563eb; color: #fff; cursor: pointer; }
.btn-link { padding: 8px 12px; color: #2563eb; text-decoration: none; }
table { width: 100%; border-collapse: collapse; background: #fff; border-radius: 8px; overflow: hidden; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
th, td { padding: 8px 10px; text-align: left; border-bottom: 1px solid #eef0f3; font-size: 13px; }
th { background: #f0f2f5; font-weight: 600; white-space: nowrap; }
td.n { text-align: right; font-variant-numeric: tabular-nums; }
td.empty { text-align: center; color: #9ca3af; padding: 24px; }
.panels { display: grid; grid-template-columns: repeat(auto-fit, minmax(280px, 1fr)); gap: 16px; margin-top: 24px; }
.panel { background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
.panel h2 { font-size: 15px; margin: 0 0 12px; }
.panel label { display: block; font-size: 13px; color: #374151; margin-bottom: 8px; }
.panel input, .panel select { width: 100%; padding: 6px 8px; border: 1px solid #d1d5db; border-radius: 6px; margin-top: 2px; }
.panel button { margin-top: 6px; padding: 8px 16px; border: 0; border-radius: 6px; background: #2563eb; color: #fff; cursor: pointer; }
.panel button.danger { background: #dc2626; }
.hint { color: #6b7280; font-size: 12px; }
pre.raw { background: #fff; border-radius: 8px; padding: 16px; overflow-x: auto; font-size: 13px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
`
