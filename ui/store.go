package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/refill-spot/site/review"
	"github.com/refill-spot/site/store"
)

// StoreDetailPage renders one store with its approved reviews.
func StoreDetailPage(userID int, userName, currentPath string, s store.Store,
	reviews []review.Review, favorited bool) g.Node {
	var badges []g.Node
	for _, cat := range s.Categories {
		badges = append(badges,
			Span(
				Class("inline-block px-2 py-0.5 rounded-full text-xs bg-gray-100 text-gray-700 mr-1"),
				g.Text(cat),
			),
		)
	}

	info := []g.Node{
		Div(Class("text-gray-600"), g.Text(s.Address)),
		g.If(s.Phone != "", Div(Class("text-gray-600"), g.Text(s.Phone))),
		g.If(s.OpenHours != "", Div(Class("text-gray-600"), g.Text(s.OpenHours))),
		g.If(s.Price > 0,
			Div(Class("text-green-700 font-semibold text-lg"), g.Textf("1인 %s원", formatPrice(s.Price)))),
		Div(
			Class("flex items-center gap-2 mt-1"),
			Span(Class("text-yellow-600 font-semibold"), g.Textf("★ %.1f", s.Rating)),
			Span(Class("text-gray-500 text-sm"), g.Textf("리뷰 %d", s.ReviewCount)),
		),
	}

	return Page(s.Name, userID, userName, currentPath,
		Div(
			Class("flex items-start justify-between"),
			Div(
				pageHeader(s.Name),
				Div(Class("mb-2"), g.Group(badges)),
			),
			g.If(userID != 0, FavoriteButton(s.ID, favorited)),
		),
		g.If(s.Thumbnail != "",
			Img(Src(s.Thumbnail), Alt(s.Name), Class("w-full max-h-96 object-cover rounded-lg mb-6")),
		),
		Div(Class("space-y-1 mb-6"), g.Group(info)),
		g.If(s.Description != "",
			P(Class("text-gray-800 mb-8"), g.Text(s.Description)),
		),
		reviewSection(userID, s.ID, reviews),
	)
}

// FavoriteButton toggles a store's favorite state over HTMX.
func FavoriteButton(storeID int, favorited bool) g.Node {
	label, verb := "☆ 즐겨찾기", "post"
	class := "px-3 py-1 rounded border text-sm bg-white text-gray-700 hover:border-yellow-400"
	if favorited {
		label, verb = "★ 즐겨찾기 해제", "delete"
		class = "px-3 py-1 rounded border text-sm bg-yellow-100 text-yellow-800 border-yellow-400"
	}

	attrs := []g.Node{
		ID(fmt.Sprintf("favorite-%d", storeID)),
		Type("button"),
		Class(class),
		hx.Target(fmt.Sprintf("#favorite-%d", storeID)),
		hx.Swap("outerHTML"),
		g.Text(label),
	}
	url := fmt.Sprintf("/api/favorite/%d", storeID)
	if verb == "delete" {
		attrs = append(attrs, hx.Delete(url))
	} else {
		attrs = append(attrs, hx.Post(url))
	}
	return Button(attrs...)
}

func reviewSection(userID, storeID int, reviews []review.Review) g.Node {
	nodes := []g.Node{
		H2(Class("text-2xl font-bold mb-4"), g.Text("리뷰")),
	}

	if userID != 0 {
		nodes = append(nodes, reviewForm(storeID))
	} else {
		nodes = append(nodes,
			P(Class("text-sm text-gray-500 mb-4"),
				A(Href("/login"), Class("text-blue-500 hover:underline"), g.Text("로그인")),
				g.Text(" 후 리뷰를 남길 수 있습니다."),
			),
		)
	}

	if len(reviews) == 0 {
		nodes = append(nodes,
			P(Class("text-gray-500"), g.Text("아직 리뷰가 없습니다.")),
		)
	}
	for _, r := range reviews {
		nodes = append(nodes, reviewCard(r))
	}

	return Div(Class("mt-8"), g.Group(nodes))
}

func reviewForm(storeID int) g.Node {
	var options []g.Node
	for r := 5; r >= 1; r-- {
		attrs := []g.Node{Value(fmt.Sprintf("%d", r)), g.Textf("★ %d", r)}
		if r == 5 {
			attrs = append(attrs, Selected())
		}
		options = append(options, Option(attrs...))
	}

	return Form(
		Class("mb-6 p-4 bg-gray-50 border border-gray-200 rounded-lg space-y-3"),
		hx.Post(fmt.Sprintf("/api/store/%d/review", storeID)),
		hx.Target("#result"),
		hx.Swap("innerHTML"),
		Div(
			Class("flex items-center gap-2"),
			Label(Class("text-sm"), g.Text("평점")),
			Select(append([]g.Node{Name("rating"), Class("border rounded px-2 py-1")}, options...)...),
		),
		Textarea(
			Name("comment"),
			Class("w-full border rounded px-3 py-2"),
			Rows("3"),
			Placeholder("이 가게에 대한 리뷰를 남겨주세요"),
		),
		styledButton("리뷰 등록", buttonPrimary, Type("submit")),
		resultContainer(),
	)
}

func reviewCard(r review.Review) g.Node {
	return Div(
		Class("border rounded-lg p-4 mb-3"),
		Div(
			Class("flex items-center justify-between mb-1"),
			Span(Class("font-semibold"), g.Text(r.UserName)),
			Span(Class("text-yellow-600"), g.Textf("★ %d", r.Rating)),
		),
		P(Class("text-gray-800"), g.Text(r.Comment)),
		Div(
			Class("text-xs text-gray-400 mt-2"),
			g.Text(r.CreatedAt.Format("2006-01-02")),
		),
	)
}
