package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func legalSection(title string, paragraphs ...string) g.Node {
	nodes := []g.Node{H2(Class("text-xl font-bold mt-6 mb-2"), g.Text(title))}
	for _, p := range paragraphs {
		nodes = append(nodes, P(Class("text-gray-700 mb-2"), g.Text(p)))
	}
	return g.Group(nodes)
}

// TermsOfServicePage displays the Terms of Service.
func TermsOfServicePage(userID int, userName, currentPath string) g.Node {
	return Page("Terms of Service", userID, userName, currentPath,
		contentContainer(
			pageHeader("이용약관"),
			legalSection("서비스 이용",
				"Refill Spot은 무한리필 음식점 정보를 제공하는 서비스입니다.",
				"가게 정보와 리뷰는 참고용이며 실제 영업 정보와 다를 수 있습니다."),
			legalSection("리뷰 정책",
				"리뷰는 운영진의 승인 후 게시됩니다.",
				"허위 사실이나 타인을 비방하는 리뷰는 사전 통보 없이 삭제될 수 있습니다."),
			legalSection("계정",
				"계정을 삭제하면 즐겨찾기와 검색 기록이 함께 삭제됩니다."),
		),
	)
}

// PrivacyPolicyPage displays the Privacy Policy.
func PrivacyPolicyPage(userID int, userName, currentPath string) g.Node {
	return Page("Privacy Policy", userID, userName, currentPath,
		contentContainer(
			pageHeader("개인정보처리방침"),
			legalSection("수집하는 정보",
				"회원가입 시 이름과 이메일을 수집합니다.",
				"위치 정보는 주변 가게 검색을 위해서만 사용되며, 브라우저 쿠키에만 저장됩니다."),
			legalSection("위치 정보",
				"위치 정보 제공은 선택 사항입니다. 거부해도 기본 지역 기준으로 서비스를 이용할 수 있습니다.",
				"저장된 위치는 언제든지 삭제할 수 있습니다."),
			legalSection("보관 기간",
				"검색 기록은 서비스 개선을 위해 보관되며, 계정 삭제 시 함께 삭제됩니다."),
		),
	)
}

// AboutPage describes what the site is.
func AboutPage(userID int, userName, currentPath string) g.Node {
	return Page("About", userID, userName, currentPath,
		contentContainer(
			pageHeader("Refill Spot 소개"),
			P(Class("text-gray-700 mb-2"),
				g.Text("Refill Spot은 내 주변의 무한리필 음식점을 쉽게 찾을 수 있는 서비스입니다.")),
			P(Class("text-gray-700 mb-2"),
				g.Text("고기, 해산물, 일식, 한식 등 카테고리별로 검색하고, 거리와 평점으로 걸러보세요.")),
		),
	)
}
