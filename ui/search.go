package ui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/refill-spot/site/discovery"
	"github.com/refill-spot/site/geo"
	"github.com/refill-spot/site/store"
)

// SearchPage renders the full search page: filter form, view toggle and the
// results container.
func SearchPage(userID int, userName, currentPath string, f discovery.FilterState,
	categories []string, view string, source geo.Source, results g.Node) g.Node {
	return Page("Search", userID, userName, currentPath,
		pageHeader("무한리필 맛집 찾기"),
		anchorNotice(source),
		searchForm(f, categories),
		viewToggle(view),
		Div(
			ID("search-results"),
			Class("mt-6"),
			results,
		),
	)
}

func anchorNotice(source geo.Source) g.Node {
	var text string
	switch source {
	case geo.SourceGPS:
		text = "Showing stores near your current location."
	case geo.SourceManual:
		text = "Showing stores near your chosen location."
	default:
		text = "Showing stores near 강남역. Allow location access for nearby results."
	}
	return Div(
		Class("text-sm text-gray-600 mb-4"),
		g.Attr("data-anchor-source", string(source)),
		g.Text(text),
	)
}

func searchForm(f discovery.FilterState, categories []string) g.Node {
	return Form(
		ID("search-form"),
		Method("get"),
		Action("/search"),
		Class("space-y-4 p-4 bg-gray-50 border border-gray-200 rounded-lg"),
		hx.Get("/search"),
		hx.Target("#search-results"),
		hx.Swap("innerHTML"),
		hx.Indicator("#indicator"),

		g.If(f.HasAnchor(),
			g.Group([]g.Node{
				Input(Type("hidden"), Name("lat"), Value(strconv.FormatFloat(*f.Latitude, 'f', -1, 64))),
				Input(Type("hidden"), Name("lng"), Value(strconv.FormatFloat(*f.Longitude, 'f', -1, 64))),
			}),
		),

		Div(
			Class("flex gap-2"),
			Input(
				Type("search"),
				Name("q"),
				Value(f.Query),
				Placeholder("가게 이름이나 주소로 검색"),
				Class("flex-1 border rounded px-3 py-2"),
			),
			styledButton("검색", buttonPrimary, Type("submit")),
		),

		Div(
			Class("flex flex-wrap gap-4 items-center"),
			distanceSelect(f.MaxDistanceKm),
			ratingSelect(f.MinRating),
		),

		categoryChips(categories, f.Categories),
	)
}

func distanceSelect(current float64) g.Node {
	options := []float64{1, 3, 5, 10}
	var nodes []g.Node
	for _, d := range options {
		attrs := []g.Node{
			Value(strconv.FormatFloat(d, 'f', -1, 64)),
			g.Textf("%gkm 이내", d),
		}
		if d == current {
			attrs = append(attrs, Selected())
		}
		nodes = append(nodes, Option(attrs...))
	}
	return Label(
		Class("flex items-center gap-2 text-sm"),
		g.Text("거리"),
		Select(append([]g.Node{Name("distance"), Class("border rounded px-2 py-1")}, nodes...)...),
	)
}

func ratingSelect(current float64) g.Node {
	options := []float64{0, 3, 3.5, 4, 4.5}
	var nodes []g.Node
	for _, r := range options {
		label := "전체"
		if r > 0 {
			label = fmt.Sprintf("★ %.1f 이상", r)
		}
		attrs := []g.Node{
			Value(strconv.FormatFloat(r, 'f', -1, 64)),
			g.Text(label),
		}
		if r == current {
			attrs = append(attrs, Selected())
		}
		nodes = append(nodes, Option(attrs...))
	}
	return Label(
		Class("flex items-center gap-2 text-sm"),
		g.Text("평점"),
		Select(append([]g.Node{Name("rating"), Class("border rounded px-2 py-1")}, nodes...)...),
	)
}

const categoryChipOnChange = "var f=this.form;" +
	"f.querySelector('[data-role=categories-joined]').value=" +
	"Array.prototype.map.call(f.querySelectorAll('[data-role=category-chip]:checked'),function(i){return i.value}).join(',');" +
	"f.requestSubmit()"

func categoryChips(all, selected []string) g.Node {
	selectedSet := map[string]bool{}
	for _, c := range selected {
		selectedSet[c] = true
	}
	var chips []g.Node
	for _, cat := range all {
		class := "px-3 py-1 rounded-full text-sm border cursor-pointer "
		if selectedSet[cat] {
			class += "bg-blue-500 text-white border-blue-500"
		} else {
			class += "bg-white text-gray-700 border-gray-300 hover:border-blue-400"
		}
		chips = append(chips,
			Label(
				Class(class),
				// no name attribute: the joined hidden field is what submits
				Input(
					Type("checkbox"),
					Value(cat),
					Class("hidden"),
					g.Attr("data-role", "category-chip"),
					g.If(selectedSet[cat], Checked()),
					g.Attr("onchange", categoryChipOnChange),
				),
				g.Text(cat),
			),
		)
	}
	return Div(
		Class("flex flex-wrap gap-2"),
		// categories travel as one comma separated parameter
		Input(Type("hidden"), Name("categories"), Value(strings.Join(selected, ",")),
			g.Attr("data-role", "categories-joined")),
		g.Group(chips),
	)
}

func viewToggle(view string) g.Node {
	toggle := func(label, target string) g.Node {
		class := "px-3 py-1 rounded text-sm border "
		if view == target {
			class += "bg-blue-500 text-white border-blue-500"
		} else {
			class += "bg-white text-gray-700 border-gray-300"
		}
		return A(
			Href("/search?view="+target),
			Class(class),
			g.Text(label),
		)
	}
	return Div(
		Class("mt-4 flex gap-2"),
		toggle("목록", "list"),
		toggle("지도", "map"),
	)
}

// SearchResults renders a complete result set: degradation notice, the
// accumulated rows in the chosen view, and the load-more trigger.
func SearchResults(res discovery.Result, ps discovery.PageState, view, loadMoreURL string) g.Node {
	nodes := []g.Node{DegradationNotice(res.Degradation)}

	if res.Empty && len(ps.Accumulated) == 0 {
		nodes = append(nodes, EmptyResultsMessage())
		return Div(g.Group(nodes))
	}

	if view == "map" {
		nodes = append(nodes, MapView(ps.Accumulated))
	} else {
		nodes = append(nodes, storeCardList(ps.Accumulated))
		if ps.HasMore {
			nodes = append(nodes, loaderDiv(loadMoreURL))
		}
	}
	return Div(g.Group(nodes))
}

// SearchResultsPage renders one appended page: the new cards plus the next
// load-more trigger, swapped in place of the previous trigger.
func SearchResultsPage(items []store.Summary, hasMore bool, loadMoreURL string) g.Node {
	nodes := []g.Node{storeCardList(items)}
	if hasMore {
		nodes = append(nodes, loaderDiv(loadMoreURL))
	}
	return g.Group(nodes)
}

func storeCardList(items []store.Summary) g.Node {
	var cards []g.Node
	for _, s := range items {
		cards = append(cards, StoreCard(s))
	}
	return Div(
		Class("space-y-3"),
		g.Group(cards),
	)
}

// StoreCard is one row in the result list.
func StoreCard(s store.Summary) g.Node {
	var badges []g.Node
	for _, cat := range s.Categories {
		badges = append(badges,
			Span(
				Class("inline-block px-2 py-0.5 rounded-full text-xs bg-gray-100 text-gray-700 mr-1"),
				g.Text(cat),
			),
		)
	}

	meta := []g.Node{
		Span(Class("text-yellow-600 font-semibold"), g.Textf("★ %.1f", s.Rating)),
		Span(Class("text-gray-500 text-sm"), g.Textf("리뷰 %d", s.ReviewCount)),
	}
	if s.Price > 0 {
		meta = append(meta, Span(Class("text-green-700 font-semibold"), g.Textf("%s원", formatPrice(s.Price))))
	}
	if s.DistanceKm != nil {
		meta = append(meta, Span(Class("text-gray-500 text-sm"), g.Textf("%.1fkm", *s.DistanceKm)))
	}

	return A(
		Href(fmt.Sprintf("/store/%d", s.ID)),
		ID(fmt.Sprintf("store-%d", s.ID)),
		Class("flex items-center gap-4 py-3 px-4 border rounded-lg hover:bg-gray-50"),
		g.If(s.Thumbnail != "",
			Img(
				Src(s.Thumbnail),
				Alt(s.Name),
				Class("w-20 h-20 object-cover rounded"),
			),
		),
		Div(
			Class("flex-1"),
			Div(Class("font-semibold text-blue-700"), g.Text(s.Name)),
			Div(Class("text-sm text-gray-500"), g.Text(s.Address)),
			Div(Class("mt-1"), g.Group(badges)),
		),
		Div(
			Class("flex flex-col items-end gap-1"),
			g.Group(meta),
		),
	)
}

func formatPrice(price int) string {
	s := strconv.Itoa(price)
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return string(out)
}

// MapView renders the Leaflet container; map.js reads the embedded store
// data and places the markers.
func MapView(items []store.Summary) g.Node {
	data, _ := json.Marshal(items)
	return Div(
		ID("map"),
		Class("w-full h-96 rounded-lg border"),
		g.Attr("data-stores", string(data)),
	)
}

// DegradationNotice tells the user when their filters were relaxed to get
// any results at all.
func DegradationNotice(d discovery.Degradation) g.Node {
	switch d {
	case discovery.DegradationNoLocation:
		return Div(
			Class("bg-yellow-100 border-yellow-500 text-yellow-800 px-4 py-3 rounded mb-4"),
			g.Text("Location search is unavailable right now. Showing results without distance filtering."),
		)
	case discovery.DegradationUnfiltered:
		return Div(
			Class("bg-yellow-100 border-yellow-500 text-yellow-800 px-4 py-3 rounded mb-4"),
			g.Text("Search is unavailable right now. Showing all stores instead."),
		)
	default:
		return g.Group(nil)
	}
}

func EmptyResultsMessage() g.Node {
	return Div(
		Class("flex justify-center items-center p-8"),
		Div(
			Class("text-center"),
			P(Class("text-gray-600 text-lg"), g.Text("조건에 맞는 가게가 없습니다")),
			P(Class("text-gray-400 text-sm mt-1"), g.Text("필터를 넓혀서 다시 검색해 보세요.")),
		),
	)
}

// SearchErrorMessage is the terminal failure state with a retry button.
func SearchErrorMessage(retryURL string) g.Node {
	return Div(
		Class("flex flex-col items-center p-8 gap-4"),
		P(Class("text-red-600"), g.Text("검색에 실패했습니다. 잠시 후 다시 시도해 주세요.")),
		styledButton("다시 시도", buttonPrimary,
			hx.Get(retryURL),
			hx.Target("#search-results"),
			hx.Swap("innerHTML"),
		),
	)
}

// LoadMoreError replaces a failed load-more trigger so the user can retry
// without losing what is already on screen.
func LoadMoreError(loadMoreURL string) g.Node {
	return Div(
		Class("flex justify-center p-4"),
		styledButton("더 보기 실패 - 다시 시도", ButtonSecondary,
			hx.Get(loadMoreURL),
			hx.Swap("outerHTML"),
			hx.Target("closest div"),
		),
	)
}

// loaderDiv fetches the next page when it scrolls into view.
func loaderDiv(url string) g.Node {
	return Div(
		ID("infinite-scroll-loader"),
		Class("h-4"),
		g.Attr("hx-get", url),
		g.Attr("hx-trigger", "revealed"),
		g.Attr("hx-swap", "outerHTML"),
	)
}
