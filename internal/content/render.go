package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/LocNguyenSGU/portfolio/internal/dom"
)

// Translator is the subset of the translation resolver renderers need.
type Translator interface {
	Resolve(key string) string
	Format(key string, vars map[string]string) string
}

// LocaleNotifier lets renderers follow locale changes.
type LocaleNotifier interface {
	Subscribe(fn func(locale string)) func()
}

// Container ids the renderers fill.
const (
	ProjectsContainerID = "projects-container"
	ProjectCountID      = "project-count"
	CareerContainerID   = "career-container"
	FilterAllID         = "filter-all"
	FilterImpressiveID  = "filter-impressive"
)

var (
	filterActiveClasses   = []string{"bg-primary", "text-white"}
	filterInactiveClasses = []string{"bg-white", "dark:bg-slate-800", "text-slate-700", "dark:text-slate-300"}
)

// Renderer turns the content data into page fragments in one language.
type Renderer struct {
	tr       Translator
	now      func() time.Time
	projects []Project
	career   []CareerEntry
	tmpl     *template.Template
}

// NewRenderer renders the package's Projects and Career.
func NewRenderer(tr Translator, now func() time.Time) *Renderer {
	return NewRendererFor(tr, now, Projects, Career)
}

// NewRendererFor renders the given data.
func NewRendererFor(tr Translator, now func() time.Time, projects []Project, career []CareerEntry) *Renderer {
	if now == nil {
		now = time.Now
	}
	r := &Renderer{tr: tr, now: now, projects: projects, career: career}
	r.tmpl = template.Must(template.New("content").Funcs(template.FuncMap{
		"t":          func(key string) string { return r.tr.Resolve(key) },
		"date":       func(s string) string { return FormatProjectDate(s, r.tr) },
		"duration":   func(p Project) string { return ProjectDuration(p, r.now(), r.tr) },
		"badge":      CategoryBadgeClass,
		"category":   func(c string) string { return CategoryLabel(c, r.tr) },
		"careerSpan": func(c CareerEntry) string { return CareerDuration(c, r.now(), r.tr) },
		"careerType": func(k string) string { return CareerTypeLabel(k, r.tr) },
		"logo":       func(tech string) string { return TechLogos[tech] },
		"firstFive":  firstFive,
		"notFirst":   func(i int) bool { return i > 0 },
	}).Parse(fragmentTemplates))
	return r
}

func firstFive(s []string) []string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// Listed returns the sorted, filtered projects.
func (r *Renderer) Listed(f Filter) []Project {
	return FilterProjects(SortProjects(r.projects, r.now()), f)
}

// ProjectCount is the localized "All N projects" / "N impressive projects".
func (r *Renderer) ProjectCount(f Filter) string {
	if f == FilterImpressive {
		n := len(r.Listed(f))
		return r.tr.Format("projects.impressiveProjects", map[string]string{"count": strconv.Itoa(n)})
	}
	return r.tr.Format("projects.allProjects", map[string]string{"count": strconv.Itoa(len(r.projects))})
}

// ProjectsHTML renders the two-column project timeline.
func (r *Renderer) ProjectsHTML(f Filter) (string, error) {
	listed := r.Listed(f)
	left, right := SplitColumns(listed)
	return r.execute("projects", map[string]any{
		"Empty":   len(listed) == 0,
		"Columns": [][]Project{left, right},
	})
}

// CareerHTML renders the career timeline.
func (r *Renderer) CareerHTML() (string, error) {
	return r.execute("career", r.career)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("content: render %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderInto fills the project, count and career containers of doc and
// flags the active filter button. Missing containers are skipped.
func (r *Renderer) RenderInto(doc *dom.Document, f Filter) error {
	if el := doc.ByID(ProjectsContainerID); el != nil {
		html, err := r.ProjectsHTML(f)
		if err != nil {
			return err
		}
		el.SetInnerHTML(html)
	}
	if el := doc.ByID(CareerContainerID); el != nil {
		html, err := r.CareerHTML()
		if err != nil {
			return err
		}
		el.SetInnerHTML(html)
	}
	r.paintCount(doc, f)
	markFilter(doc, f)
	return nil
}

func (r *Renderer) paintCount(doc *dom.Document, f Filter) {
	if el := doc.ByID(ProjectCountID); el != nil {
		el.SetText(r.ProjectCount(f))
	}
}

func markFilter(doc *dom.Document, f Filter) {
	active, inactive := doc.ByID(FilterAllID), doc.ByID(FilterImpressiveID)
	if f == FilterImpressive {
		active, inactive = inactive, active
	}
	if active != nil {
		active.AddClass(filterActiveClasses...)
		active.RemoveClass(filterInactiveClasses...)
	}
	if inactive != nil {
		inactive.RemoveClass(filterActiveClasses...)
		inactive.AddClass(filterInactiveClasses...)
	}
}

// Follow re-renders doc's containers whenever n reports a new locale.
// Render errors are passed to onErr, which may be nil.
func (r *Renderer) Follow(n LocaleNotifier, doc *dom.Document, f Filter, onErr func(error)) func() {
	return n.Subscribe(func(string) {
		if err := r.RenderInto(doc, f); err != nil && onErr != nil {
			onErr(err)
		}
	})
}

const fragmentTemplates = `
{{define "projects"}}{{if .Empty}}
<div class="col-span-2 text-center py-12">
  <p class="text-slate-600 dark:text-slate-400">{{t "projects.noProjects"}}</p>
</div>{{else}}{{range .Columns}}
<div class="relative pl-6">
  <div class="absolute left-0 top-0 bottom-0 w-px bg-slate-300 dark:bg-slate-600"></div>
  {{range .}}{{template "project" .}}{{end}}
</div>{{end}}{{end}}{{end}}

{{define "project"}}
<div class="relative group mb-8" data-project-id="{{.ID}}" data-category="{{.Category}}">
  <div class="absolute -left-6 top-3 w-4 h-4 rounded-full {{if .Ongoing}}bg-primary animate-pulse{{else}}bg-slate-400 dark:bg-slate-500{{end}} border-4 border-white dark:border-slate-900 z-10"></div>
  <div class="bg-white dark:bg-slate-800 rounded-xl p-5 border border-slate-200 dark:border-slate-700 shadow-sm">
    <div class="flex flex-col gap-2 mb-3">
      <div class="flex items-start justify-between gap-2">
        <h3 class="text-base font-semibold leading-tight flex-1">{{.Title}}</h3>
        {{if .Impressive}}<span class="flex-shrink-0 w-2 h-2 bg-amber-500 rounded-full" title="{{t "projects.impressive"}}"></span>{{end}}
      </div>
      <div class="flex flex-wrap items-center gap-2">
        {{if .Score}}<span class="px-2 py-0.5 bg-green-100 text-green-700 text-xs font-medium rounded-full">{{t "projects.score"}}: {{.Score}}/10</span>{{end}}
        {{if .Hackathon}}<span class="px-2 py-0.5 bg-red-100 text-red-700 text-xs font-semibold rounded-full">{{.Hackathon}}</span>{{end}}
        <span class="px-2 py-0.5 {{badge .Category}} text-xs font-medium rounded-md">{{category .Category}}</span>
      </div>
    </div>
    <div class="flex items-center gap-2 text-xs text-slate-500 mb-3">
      <span>{{date .StartDate}} - {{date .EndDate}}</span>
      <span class="text-slate-400">•</span>
      <span>{{duration .}}</span>
    </div>
    <p class="text-slate-600 dark:text-slate-300 mb-3 text-sm leading-relaxed">{{.Description}}</p>
    <div class="mb-3 flex flex-wrap gap-1.5">
      {{range .TechStack}}<span class="px-2 py-0.5 bg-blue-50 text-blue-700 text-xs font-medium rounded">{{.}}</span>{{end}}
    </div>
    <div class="flex items-center justify-between gap-2 pt-3 border-t border-slate-100">
      <span class="text-xs text-slate-600">{{.Role}}</span>
      {{if .Link}}<a href="{{.Link}}" target="_blank" rel="noopener noreferrer" class="text-xs font-medium text-primary">{{t "projects.viewCode"}}</a>{{end}}
    </div>
    <details class="mt-3">
      <summary class="cursor-pointer text-xs font-semibold text-amber-900">{{t "projects.whatLearned"}}</summary>
      <div class="mt-2 bg-amber-50 border border-amber-200 rounded-lg p-2.5">
        <p class="text-xs text-amber-800 leading-relaxed">{{.WhatLearned}}</p>
      </div>
    </details>
  </div>
</div>{{end}}

{{define "career"}}{{range $i, $job := .}}
<div class="relative group" data-career-company="{{$job.Company}}" data-career-position="{{$job.Title}}">
  {{if notFirst $i}}<div class="absolute left-4 -top-6 w-0.5 h-6 bg-slate-300"></div>{{end}}
  <div class="absolute left-0 top-6 w-8 h-8 rounded-full {{if $job.Current}}bg-gradient-to-br from-purple-500 to-primary{{else}}bg-slate-400{{end}} border-4 border-white z-10"></div>
  <div class="ml-16 bg-white dark:bg-slate-800 rounded-2xl p-6 border border-slate-200 shadow-sm">
    <div class="mb-4">
      <h3 class="text-xl font-semibold mb-2">{{$job.Title}} — <span class="text-primary">{{$job.Company}}</span></h3>
      <div class="flex items-center gap-2 text-sm text-slate-500 mb-1">
        <span>{{$job.StartDate}} — {{if $job.Current}}<span class="text-green-600 font-semibold">{{t "career.present"}}</span>{{else}}{{$job.EndDate}}{{end}}</span>
        <span class="text-slate-400">•</span>
        <span>{{careerSpan $job}}</span>
      </div>
      <span class="inline-block px-2.5 py-1 bg-purple-100 text-purple-700 text-xs font-medium rounded-lg">{{careerType $job.Type}}</span>
    </div>
    <p class="text-slate-600 mb-3 text-sm italic leading-relaxed">{{$job.Description}}</p>
    <p class="text-slate-700 mb-4 leading-relaxed">{{$job.Responsibility}}</p>
    <div class="mb-4 flex flex-wrap gap-2">
      {{range $job.TechStack}}<span class="skill-tag px-3 py-1.5 bg-slate-100 text-slate-700 text-sm font-medium rounded-lg">{{.}}</span>{{end}}
    </div>
    <div class="flex items-center gap-3 pt-4 border-t border-slate-200">
      {{range firstFive $job.TechStack}}{{with logo .}}<div class="w-12 h-12 p-2 bg-slate-50 rounded-lg"><img src="{{.}}" alt="" class="w-full h-full object-contain"></div>{{end}}{{end}}
    </div>
  </div>
</div>{{end}}{{end}}
`
