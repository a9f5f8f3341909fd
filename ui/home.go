package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/refill-spot/site/announcement"
	"github.com/refill-spot/site/discovery"
	"github.com/refill-spot/site/search"
)

// HomePage is the landing page: search entry point, category shortcuts,
// announcements and the user's recent searches.
func HomePage(userID int, userName, currentPath, view string, categories []string,
	announcements []announcement.Announcement, recent []search.UserSearch) g.Node {
	content := []g.Node{
		pageHeader("무한리필 가게 찾기, Refill Spot"),
		P(Class("text-gray-600 mb-6"), g.Text("내 주변 무한리필 맛집을 찾아보세요.")),
		searchForm(discovery.NewFilterState(), categories),
		Div(ID("search-results"), Class("mt-6")),
	}

	if len(recent) > 0 {
		content = append(content, recentSearches(recent))
	}
	if len(announcements) > 0 {
		content = append(content, announcementList(announcements))
	}

	return Page("Refill Spot", userID, userName, currentPath, content...)
}

func recentSearches(recent []search.UserSearch) g.Node {
	var links []g.Node
	for _, s := range recent {
		links = append(links,
			A(
				Href("/search?"+s.QueryString),
				Class("inline-block px-3 py-1 rounded-full text-sm bg-gray-100 text-gray-700 hover:bg-gray-200 mr-2 mb-2"),
				g.Text(s.QueryString),
			),
		)
	}
	return Div(
		Class("mt-8"),
		sectionHeader("최근 검색", ""),
		Div(Class("mt-2"), g.Group(links)),
	)
}

func announcementList(announcements []announcement.Announcement) g.Node {
	var items []g.Node
	for _, a := range announcements {
		title := a.Title
		if a.Pinned {
			title = "📌 " + title
		}
		items = append(items,
			Div(
				Class("border rounded-lg p-4 mb-3"),
				Div(Class("font-semibold"), g.Text(title)),
				P(Class("text-sm text-gray-600 mt-1"), g.Text(a.Body)),
				Div(Class("text-xs text-gray-400 mt-2"), g.Text(a.CreatedAt.Format("2006-01-02"))),
			),
		)
	}
	return Div(
		Class("mt-8"),
		sectionHeader("공지사항", ""),
		Div(Class("mt-2"), g.Group(items)),
	)
}
