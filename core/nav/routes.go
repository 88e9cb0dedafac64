// Package nav describes the admin application's pages and its navigation menu.
package nav

import "strings"

type Route struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Path        string `json:"path"`
	Icon        string `json:"icon"`
	HideFromNav bool   `json:"hideFromNav"`
}

// Routes is the page table, in menu order.
var Routes = []Route{
	{ID: "dashboard", Label: "Dashboard", Path: "/", Icon: "LayoutDashboard"},
	{ID: "students", Label: "Students", Path: "/students", Icon: "Users"},
	{ID: "studentDetail", Label: "Student Detail", Path: "/students/:id", Icon: "User", HideFromNav: true},
	{ID: "addStudent", Label: "Add Student", Path: "/students/add", Icon: "UserPlus", HideFromNav: true},
	{ID: "batches", Label: "Batches", Path: "/batches", Icon: "BookOpen"},
	{ID: "batchDetail", Label: "Batch Detail", Path: "/batches/:id", Icon: "Book", HideFromNav: true},
	{ID: "addBatch", Label: "Add Batch", Path: "/batches/add", Icon: "Plus", HideFromNav: true},
	{ID: "schedule", Label: "Schedule", Path: "/schedule", Icon: "Calendar"},
	{ID: "fees", Label: "Fees", Path: "/fees", Icon: "CreditCard"},
	{ID: "teachers", Label: "Teachers", Path: "/teachers", Icon: "GraduationCap"},
	{ID: "addTeacher", Label: "Add Teacher", Path: "/teachers/add", Icon: "UserPlus", HideFromNav: true},
}

// All returns a copy of the page table.
func All() []Route {
	return append([]Route(nil), Routes...)
}

// Visible returns the routes shown in the navigation menu.
func Visible() []Route {
	visible := make([]Route, 0, len(Routes))
	for _, r := range Routes {
		if !r.HideFromNav {
			visible = append(visible, r)
		}
	}
	return visible
}

// Match resolves path to its Route, and the value of its `:id` segment if any.
// Static routes win over parameterized ones ("/students/add" is not a student).
func Match(path string) (route Route, id string, ok bool) {
	path = normalize(path)
	for _, r := range Routes {
		if r.Path == path {
			return r, "", true
		}
	}
	segs := strings.Split(path, "/")
	for _, r := range Routes {
		rsegs := strings.Split(r.Path, "/")
		if len(rsegs) != len(segs) {
			continue
		}
		param, matched := "", true
		for i, rs := range rsegs {
			if strings.HasPrefix(rs, ":") && segs[i] != "" {
				param = segs[i]
				continue
			}
			if rs != segs[i] {
				matched = false
				break
			}
		}
		if matched {
			return r, param, true
		}
	}
	return Route{}, "", false
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}
