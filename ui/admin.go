package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/refill-spot/site/announcement"
	"github.com/refill-spot/site/review"
	"github.com/refill-spot/site/search"
	"github.com/refill-spot/site/store"
	"github.com/refill-spot/site/user"
)

var adminSections = []struct {
	Name  string
	Label string
}{
	{"users", "Users"},
	{"stores", "Stores"},
	{"reviews", "Pending Reviews"},
	{"announcements", "Announcements"},
	{"top-searches", "Top Searches"},
	{"caches", "Caches"},
}

func adminNav(active string) g.Node {
	var links []g.Node
	for _, s := range adminSections {
		class := "block px-4 py-2 text-sm rounded hover:bg-gray-100"
		if s.Name == active {
			class = "block px-4 py-2 text-sm rounded bg-blue-100 text-blue-800 font-semibold"
		}
		links = append(links,
			A(
				Href("/admin/"+s.Name),
				Class(class),
				hx.Get("/admin/"+s.Name),
				hx.Target("#admin-content"),
				hx.Swap("innerHTML"),
				g.Attr("hx-push-url", "true"),
				g.Text(s.Label),
			),
		)
	}
	return Div(Class("w-48 shrink-0"), g.Group(links))
}

// AdminSectionPage renders the admin shell around one section.
func AdminSectionPage(userID int, userName, currentPath, sectionName string, content g.Node) g.Node {
	return Div(
		Class("flex gap-6"),
		adminNav(sectionName),
		Div(
			ID("admin-content"),
			Class("flex-1"),
			content,
		),
	)
}

func adminTable(headers []string, rows []g.Node) g.Node {
	var headerCells []g.Node
	for _, h := range headers {
		headerCells = append(headerCells,
			Th(Class("text-left px-3 py-2 border-b font-semibold text-sm"), g.Text(h)))
	}
	return Table(
		Class("w-full border rounded-lg"),
		THead(Tr(headerCells...)),
		TBody(g.Group(rows)),
	)
}

func adminCell(nodes ...g.Node) g.Node {
	return Td(append([]g.Node{Class("px-3 py-2 border-b text-sm")}, nodes...)...)
}

// ---- Users ----

func AdminUsersSection(users []user.User) g.Node {
	return Div(
		Div(
			Class("flex items-center justify-between mb-4"),
			H2(Class("text-2xl font-bold"), g.Text("Users")),
			styledLink("Export JSON", "/admin/export/users", ButtonSecondary),
		),
		AdminUserTable(users),
	)
}

func AdminUserTable(users []user.User) g.Node {
	var rows []g.Node
	for _, u := range users {
		status := "active"
		if u.IsArchived() {
			status = "archived"
		}
		var action g.Node = g.Text("")
		if !u.IsArchived() {
			action = Button(
				Type("button"),
				Class("text-xs text-red-600 hover:underline"),
				hx.Post(fmt.Sprintf("/admin/users/%d/archive", u.ID)),
				hx.Target("#admin-user-table"),
				hx.Swap("outerHTML"),
				g.Text("Archive"),
			)
		}
		rows = append(rows, Tr(
			adminCell(g.Text(strconv.Itoa(u.ID))),
			adminCell(g.Text(u.Name)),
			adminCell(g.Text(u.Email)),
			adminCell(g.If(u.IsAdmin, g.Text("admin"))),
			adminCell(g.Text(status)),
			adminCell(action),
		))
	}
	return Div(
		ID("admin-user-table"),
		adminTable([]string{"ID", "Name", "Email", "Role", "Status", ""}, rows),
	)
}

// ---- Stores ----

func AdminStoresSection(stores []store.Store) g.Node {
	var rows []g.Node
	for _, s := range stores {
		rows = append(rows, Tr(
			adminCell(g.Text(strconv.Itoa(s.ID))),
			adminCell(A(
				Href(fmt.Sprintf("/store/%d", s.ID)),
				Class("text-blue-600 hover:underline"),
				g.Text(s.Name),
			)),
			adminCell(g.Text(s.Address)),
			adminCell(g.Text(strings.Join(s.Categories, ", "))),
			adminCell(g.Textf("★ %.1f (%d)", s.Rating, s.ReviewCount)),
			adminCell(
				A(
					Href(fmt.Sprintf("/admin/stores/%d/edit", s.ID)),
					Class("text-xs text-blue-600 hover:underline mr-2"),
					g.Text("Edit"),
				),
				Button(
					Type("button"),
					Class("text-xs text-red-600 hover:underline"),
					hx.Post(fmt.Sprintf("/admin/stores/%d/archive", s.ID)),
					hx.Target("#admin-content"),
					hx.Swap("innerHTML"),
					g.Text("Archive"),
				),
			),
		))
	}
	return Div(
		Div(
			Class("flex items-center justify-between mb-4"),
			H2(Class("text-2xl font-bold"), g.Text("Stores")),
			Div(
				styledLink("New Store", "/admin/stores/new", buttonPrimary),
				styledLink("Export JSON", "/admin/export/stores", ButtonSecondary),
			),
		),
		adminTable([]string{"ID", "Name", "Address", "Categories", "Rating", ""}, rows),
	)
}

func adminFormField(labelText, name, value string) g.Node {
	return Div(
		Label(Class("block font-bold mb-1 text-sm"), For(name), g.Text(labelText)),
		Input(
			Type("text"),
			Name(name),
			ID(name),
			Value(value),
			Class("w-full border rounded px-3 py-2"),
		),
	)
}

// AdminStoreForm is the create/edit form; a zero-ID store means create.
func AdminStoreForm(s store.Store, categories []string) g.Node {
	action := "/admin/stores"
	title := "New Store"
	if s.ID != 0 {
		action = fmt.Sprintf("/admin/stores/%d", s.ID)
		title = fmt.Sprintf("Edit Store #%d", s.ID)
	}

	return Div(
		H2(Class("text-2xl font-bold mb-4"), g.Text(title)),
		Form(
			Class("space-y-4 max-w-xl"),
			Method("post"),
			Action(action),
			EncType("multipart/form-data"),
			hx.Post(action),
			hx.Target("#result"),
			hx.Swap("innerHTML"),
			adminFormField("Name", "name", s.Name),
			adminFormField("Address", "address", s.Address),
			adminFormField("Phone", "phone", s.Phone),
			adminFormField("Open hours", "open_hours", s.OpenHours),
			adminFormField("Price (KRW)", "price", strconv.Itoa(s.Price)),
			adminFormField("Latitude", "lat", strconv.FormatFloat(s.Lat, 'f', -1, 64)),
			adminFormField("Longitude", "lng", strconv.FormatFloat(s.Lng, 'f', -1, 64)),
			adminFormField("Thumbnail URL", "thumbnail", s.Thumbnail),
			Div(
				Label(Class("block font-bold mb-1 text-sm"), For("categories"),
					g.Text("Categories (comma separated: "+strings.Join(categories, ", ")+")")),
				Input(
					Type("text"),
					Name("categories"),
					ID("categories"),
					Value(strings.Join(s.Categories, ",")),
					Class("w-full border rounded px-3 py-2"),
				),
			),
			Div(
				Label(Class("block font-bold mb-1 text-sm"), For("description"), g.Text("Description")),
				Textarea(
					Name("description"),
					ID("description"),
					Class("w-full border rounded px-3 py-2"),
					Rows("4"),
					g.Text(s.Description),
				),
			),
			Div(
				Label(Class("block font-bold mb-1 text-sm"), For("images"), g.Text("Images")),
				Input(Type("file"), Name("images"), ID("images"), g.Attr("accept", "image/*"), g.Attr("multiple")),
			),
			styledButton("Save", buttonPrimary, Type("submit")),
			resultContainer(),
		),
	)
}

// ---- Reviews ----

func AdminReviewsSection(reviews []review.Review) g.Node {
	return Div(
		H2(Class("text-2xl font-bold mb-4"), g.Text("Pending Reviews")),
		AdminReviewTable(reviews),
	)
}

func AdminReviewTable(reviews []review.Review) g.Node {
	if len(reviews) == 0 {
		return Div(
			ID("admin-review-table"),
			P(Class("text-gray-500"), g.Text("No reviews waiting for moderation.")),
		)
	}

	moderate := func(id int, status, label, class string) g.Node {
		return Button(
			Type("button"),
			Class(class),
			hx.Post(fmt.Sprintf("/admin/reviews/%d/moderate", id)),
			g.Attr("hx-vals", fmt.Sprintf(`{"status": %q}`, status)),
			hx.Target("#admin-review-table"),
			hx.Swap("outerHTML"),
			g.Text(label),
		)
	}

	var rows []g.Node
	for _, r := range reviews {
		rows = append(rows, Tr(
			adminCell(g.Text(strconv.Itoa(r.ID))),
			adminCell(A(
				Href(fmt.Sprintf("/store/%d", r.StoreID)),
				Class("text-blue-600 hover:underline"),
				g.Textf("#%d", r.StoreID),
			)),
			adminCell(g.Text(r.UserName)),
			adminCell(g.Textf("★ %d", r.Rating)),
			adminCell(g.Text(r.Comment)),
			adminCell(
				moderate(r.ID, review.StatusApproved, "Approve", "text-xs text-green-600 hover:underline mr-2"),
				moderate(r.ID, review.StatusRejected, "Reject", "text-xs text-red-600 hover:underline"),
			),
		))
	}
	return Div(
		ID("admin-review-table"),
		adminTable([]string{"ID", "Store", "User", "Rating", "Comment", ""}, rows),
	)
}

// ---- Announcements ----

func AdminAnnouncementsSection(announcements []announcement.Announcement) g.Node {
	return Div(
		H2(Class("text-2xl font-bold mb-4"), g.Text("Announcements")),
		Form(
			Class("space-y-3 mb-6 max-w-xl p-4 bg-gray-50 border rounded-lg"),
			hx.Post("/admin/announcements"),
			hx.Target("#admin-announcement-table"),
			hx.Swap("outerHTML"),
			adminFormField("Title", "title", ""),
			Div(
				Label(Class("block font-bold mb-1 text-sm"), For("body"), g.Text("Body")),
				Textarea(Name("body"), ID("body"), Class("w-full border rounded px-3 py-2"), Rows("3")),
			),
			Label(
				Class("flex items-center gap-2 text-sm"),
				Input(Type("checkbox"), Name("pinned"), Value("true")),
				g.Text("Pin to top"),
			),
			styledButton("Publish", buttonPrimary, Type("submit")),
		),
		AdminAnnouncementTable(announcements),
	)
}

func AdminAnnouncementTable(announcements []announcement.Announcement) g.Node {
	var rows []g.Node
	for _, a := range announcements {
		rows = append(rows, Tr(
			adminCell(g.Text(strconv.Itoa(a.ID))),
			adminCell(g.If(a.Pinned, g.Text("📌")), g.Text(a.Title)),
			adminCell(g.Text(a.CreatedAt.Format("2006-01-02"))),
			adminCell(Button(
				Type("button"),
				Class("text-xs text-red-600 hover:underline"),
				hx.Delete(fmt.Sprintf("/admin/announcements/%d", a.ID)),
				hx.Target("#admin-announcement-table"),
				hx.Swap("outerHTML"),
				g.Text("Delete"),
			)),
		))
	}
	return Div(
		ID("admin-announcement-table"),
		adminTable([]string{"ID", "Title", "Created", ""}, rows),
	)
}

// ---- Searches ----

func AdminTopSearchesSection(searches []search.TopSearch) g.Node {
	var rows []g.Node
	for _, s := range searches {
		rows = append(rows, Tr(
			adminCell(g.Text(s.QueryString)),
			adminCell(g.Text(strconv.Itoa(s.Count))),
		))
	}
	return Div(
		H2(Class("text-2xl font-bold mb-4"), g.Text("Top Searches")),
		adminTable([]string{"Query", "Count"}, rows),
	)
}

// ---- Caches ----

func AdminCachesSection(stats map[string]map[string]interface{}) g.Node {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	var sections []g.Node
	for _, name := range names {
		cacheStats := stats[name]
		keys := make([]string, 0, len(cacheStats))
		for k := range cacheStats {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var rows []g.Node
		for _, k := range keys {
			rows = append(rows, Tr(
				adminCell(g.Text(k)),
				adminCell(g.Textf("%v", cacheStats[k])),
			))
		}
		sections = append(sections,
			Div(
				Class("mb-6"),
				H3(Class("text-lg font-bold mb-2"), g.Text(name)),
				adminTable([]string{"Stat", "Value"}, rows),
			),
		)
	}

	return Div(
		Div(
			Class("flex items-center justify-between mb-4"),
			H2(Class("text-2xl font-bold"), g.Text("Caches")),
			Div(
				styledButton("Clear B2 Cache", ButtonDanger,
					hx.Post("/admin/caches/b2/clear"),
					hx.Target("#admin-content"),
					hx.Swap("innerHTML"),
				),
				styledButton("Clear Category Cache", ButtonDanger,
					hx.Post("/admin/caches/categories/clear"),
					hx.Target("#admin-content"),
					hx.Swap("innerHTML"),
				),
			),
		),
		Form(
			Class("flex items-end gap-2 mb-6"),
			hx.Post("/admin/caches/b2/refresh"),
			hx.Target("#admin-content"),
			hx.Swap("innerHTML"),
			Div(
				Label(Class("block font-bold mb-1 text-sm"), For("prefix"), g.Text("Token prefix")),
				Input(
					Type("text"),
					Name("prefix"),
					ID("prefix"),
					Placeholder("storeID/"),
					Class("border rounded px-3 py-2"),
				),
			),
			styledButton("Refresh B2 Token", ButtonSecondary, Type("submit")),
		),
		g.Group(sections),
	)
}
