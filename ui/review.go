package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/refill-spot/site/review"
)

func reviewStatusBadge(status string) g.Node {
	class := "inline-flex items-center px-2 py-1 rounded-full text-xs font-medium "
	switch status {
	case review.StatusApproved:
		class += "bg-green-100 text-green-800"
	case review.StatusRejected:
		class += "bg-red-100 text-red-800"
	default:
		class += "bg-yellow-100 text-yellow-800"
	}
	return Span(Class(class), g.Text(status))
}

// MyReviewsPage lists the user's own reviews with their moderation state.
func MyReviewsPage(userID int, userName, currentPath string, reviews []review.Review) g.Node {
	content := []g.Node{pageHeader("내 리뷰")}

	if len(reviews) == 0 {
		content = append(content,
			P(Class("text-gray-500"), g.Text("아직 작성한 리뷰가 없습니다.")),
		)
	}

	for _, r := range reviews {
		content = append(content,
			Div(
				ID(fmt.Sprintf("review-%d", r.ID)),
				Class("border rounded-lg p-4 mb-3"),
				Div(
					Class("flex items-center justify-between mb-1"),
					Div(
						Class("flex items-center gap-2"),
						A(
							Href(fmt.Sprintf("/store/%d", r.StoreID)),
							Class("font-semibold text-blue-700 hover:underline"),
							g.Textf("가게 #%d", r.StoreID),
						),
						reviewStatusBadge(r.Status),
					),
					Span(Class("text-yellow-600"), g.Textf("★ %d", r.Rating)),
				),
				P(Class("text-gray-800"), g.Text(r.Comment)),
				Div(
					Class("flex items-center justify-between mt-2"),
					Span(Class("text-xs text-gray-400"), g.Text(r.CreatedAt.Format("2006-01-02"))),
					Button(
						Type("button"),
						Class("text-xs text-red-600 hover:underline"),
						hx.Delete(fmt.Sprintf("/api/review/%d", r.ID)),
						hx.Target(fmt.Sprintf("#review-%d", r.ID)),
						hx.Swap("outerHTML"),
						g.Text("삭제"),
					),
				),
			),
		)
	}

	return Page("My Reviews", userID, userName, currentPath, content...)
}
