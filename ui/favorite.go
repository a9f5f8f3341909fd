package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/refill-spot/site/store"
)

// FavoritesPage lists the user's favorite stores, most recently added first.
func FavoritesPage(userID int, userName, currentPath string, stores []store.Store) g.Node {
	content := []g.Node{pageHeader("즐겨찾기")}

	if len(stores) == 0 {
		content = append(content,
			P(Class("text-gray-500"), g.Text("아직 즐겨찾기한 가게가 없습니다.")),
		)
	}

	var rows []g.Node
	for _, s := range stores {
		rows = append(rows,
			A(
				Href(fmt.Sprintf("/store/%d", s.ID)),
				Class("flex items-center gap-4 py-3 px-4 border rounded-lg hover:bg-gray-50"),
				Div(
					Class("flex-1"),
					Div(Class("font-semibold text-blue-700"), g.Text(s.Name)),
					Div(Class("text-sm text-gray-500"), g.Text(s.Address)),
				),
				Span(Class("text-yellow-600 font-semibold"), g.Textf("★ %.1f", s.Rating)),
			),
		)
	}
	content = append(content, Div(Class("space-y-3"), g.Group(rows)))

	return Page("Favorites", userID, userName, currentPath, content...)
}
