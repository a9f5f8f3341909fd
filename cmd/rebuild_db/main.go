package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/refill-spot/site/password"
)

type seedStore struct {
	name        string
	address     string
	description string
	phone       string
	openHours   string
	price       int
	lat, lng    float64
	categories  []string
}

var categories = []string{"고기", "한식", "일식", "중식", "양식", "분식", "카페", "뷔페"}

var stores = []seedStore{
	{"무한리필 삼겹살 강남점", "서울 강남구 강남대로 396", "국내산 삼겹살과 목살 무한리필. 된장찌개 셀프바 포함.", "02-555-0101", "11:00-23:00", 16900, 37.4995092, 127.0271431, []string{"고기", "한식"}},
	{"스시로로 무한리필", "서울 강남구 테헤란로 129", "초밥 40여종 무한리필. 런치 타임 할인.", "02-555-0102", "11:30-22:00", 29900, 37.5001913, 127.0310557, []string{"일식", "뷔페"}},
	{"마라탕 무한리필 역삼점", "서울 강남구 역삼로 155", "마라탕과 꿔바로우를 무제한으로.", "02-555-0103", "11:00-22:30", 19900, 37.4959454, 127.0332758, []string{"중식"}},
	{"피자앤파스타 뷔페", "서울 서초구 서초대로 77길 3", "화덕 피자와 파스타 무한리필. 샐러드바 포함.", "02-555-0104", "11:00-21:30", 15900, 37.4925830, 127.0141242, []string{"양식", "뷔페"}},
	{"곱창의신 무한리필", "서울 강남구 선릉로 428", "곱창과 막창 무한리필 전문점.", "02-555-0105", "16:00-02:00", 24900, 37.5040039, 127.0489246, []string{"고기", "한식"}},
	{"떡볶이 연구소", "서울 강남구 강남대로 102길 16", "즉석떡볶이와 튀김 무한리필.", "02-555-0106", "11:00-22:00", 9900, 37.5011691, 127.0259350, []string{"분식"}},
	{"브런치 카페 리필", "서울 서초구 강남대로 51길 1", "커피와 디저트 리필 카페. 베이커리 뷔페 주말 운영.", "02-555-0107", "09:00-21:00", 12900, 37.4937520, 127.0250292, []string{"카페"}},
	{"한우리 소고기 무한리필", "서울 강남구 논현로 508", "한우 등심과 차돌박이 무한리필.", "02-555-0108", "12:00-23:00", 39900, 37.5036670, 127.0415217, []string{"고기", "한식"}},
}

func main() {
	dbFile := "refillspot.db"
	schemaFile := "schema.sql"

	if _, err := os.Stat(dbFile); err == nil {
		if err := os.Remove(dbFile); err != nil {
			log.Fatalf("Failed to remove old DB: %v", err)
		}
	}

	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", schemaFile, err)
	}

	db, err := sql.Open("sqlite3", dbFile)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(string(schema)); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Failed to seed DB: %v", err)
	}

	fmt.Printf("Rebuilt %s with %d stores\n", dbFile, len(stores))
}

func seed(db *sql.DB) error {
	for i, name := range categories {
		if _, err := db.Exec(`INSERT INTO Category (name, sort_order) VALUES (?, ?)`, name, i); err != nil {
			return err
		}
	}

	if err := seedUser(db, "관리자", "admin@refillspot.kr", "admin1234", true); err != nil {
		return err
	}
	if err := seedUser(db, "민수", "minsu@example.com", "password1", false); err != nil {
		return err
	}

	for _, s := range stores {
		res, err := db.Exec(`INSERT INTO Store (name, address, description, phone, open_hours, price, lat, lng)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.name, s.address, s.description, s.phone, s.openHours, s.price, s.lat, s.lng)
		if err != nil {
			return err
		}
		storeID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, cat := range s.categories {
			if _, err := db.Exec(`INSERT INTO StoreCategory (store_id, category_id)
				SELECT ?, id FROM Category WHERE name = ?`, storeID, cat); err != nil {
				return err
			}
		}
		if _, err := db.Exec(`INSERT INTO Review (store_id, user_id, rating, comment, status)
			VALUES (?, 2, 5, '가성비 최고입니다. 재방문 의사 있어요.', 'approved')`, storeID); err != nil {
			return err
		}
		if _, err := db.Exec(`UPDATE Store SET rating = 5, review_count = 1 WHERE id = ?`, storeID); err != nil {
			return err
		}
	}

	_, err := db.Exec(`INSERT INTO Announcement (title, body, pinned)
		VALUES ('리필스팟 오픈', '강남 지역 무한리필 맛집 정보를 시작으로 서비스 지역을 넓혀갑니다.', 1)`)
	return err
}

func seedUser(db *sql.DB, name, email, plain string, admin bool) error {
	hash, salt, err := password.HashPassword(plain)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO User (name, email, password_hash, password_salt, is_admin)
		VALUES (?, ?, ?, ?, ?)`, name, email, hash, salt, admin)
	return err
}
