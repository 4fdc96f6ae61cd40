package models

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Book is one of the 66 canonical books.
type Book struct {
	Name     string
	Chapters int
	Verses   int
}

// Info formats the chapter and verse counts, e.g. "50장 1,533절".
func (b Book) Info() string {
	return fmt.Sprintf("%d장 %s절", b.Chapters, groupThousands(b.Verses))
}

// BookCategory is a traditional grouping of books within a testament.
type BookCategory struct {
	Key   string
	Title string
	Books []Book
}

// Testament is the Old or New Testament with its categories.
type Testament struct {
	Key        string
	Title      string
	Categories []BookCategory
}

// BookCount returns the number of books in the testament.
func (t Testament) BookCount() int {
	n := 0
	for _, c := range t.Categories {
		n += len(c.Books)
	}
	return n
}

// ChapterCount returns the total number of chapters in the testament.
func (t Testament) ChapterCount() int {
	n := 0
	for _, c := range t.Categories {
		for _, b := range c.Books {
			n += b.Chapters
		}
	}
	return n
}

// VerseCount returns the total number of verses in the testament.
func (t Testament) VerseCount() int {
	n := 0
	for _, c := range t.Categories {
		for _, b := range c.Books {
			n += b.Verses
		}
	}
	return n
}

// Info formats the testament totals, e.g. "(총 929장 23,145절)".
func (t Testament) Info() string {
	return fmt.Sprintf("(총 %d장 %s절)", t.ChapterCount(), groupThousands(t.VerseCount()))
}

// Canon is the fixed reference table of testaments, categories and books.
var Canon = []Testament{
	{
		Key:   "old",
		Title: "구약",
		Categories: []BookCategory{
			{Key: "pentateuch", Title: "모세오경", Books: []Book{
				{"창세기", 50, 1533},
				{"출애굽기", 40, 1213},
				{"레위기", 27, 859},
				{"민수기", 36, 1288},
				{"신명기", 34, 959},
			}},
			{Key: "historical", Title: "역사서", Books: []Book{
				{"여호수아", 24, 658},
				{"사사기", 21, 618},
				{"룻기", 4, 85},
				{"사무엘상", 31, 810},
				{"사무엘하", 24, 695},
				{"열왕기상", 22, 816},
				{"열왕기하", 25, 719},
				{"역대상", 29, 942},
				{"역대하", 36, 822},
				{"에스라", 10, 280},
				{"느헤미야", 13, 406},
				{"에스더", 10, 167},
			}},
			{Key: "poetic", Title: "시가서", Books: []Book{
				{"욥기", 42, 1070},
				{"시편", 150, 2461},
				{"잠언", 31, 915},
				{"전도서", 12, 222},
				{"아가서", 8, 117},
			}},
			{Key: "majorProphets", Title: "대선지서", Books: []Book{
				{"이사야", 66, 1292},
				{"예레미야", 52, 1364},
				{"예레미야애가", 5, 154},
				{"에스겔", 48, 1273},
				{"다니엘", 12, 357},
			}},
			{Key: "minorProphets", Title: "소선지서", Books: []Book{
				{"호세아", 14, 197},
				{"요엘", 3, 73},
				{"아모스", 9, 146},
				{"오바댜", 1, 21},
				{"요나", 4, 48},
				{"미가", 7, 105},
				{"나훔", 3, 47},
				{"하박국", 3, 56},
				{"스바냐", 3, 53},
				{"학개", 2, 38},
				{"스가랴", 14, 211},
				{"말라기", 4, 55},
			}},
		},
	},
	{
		Key:   "new",
		Title: "신약",
		Categories: []BookCategory{
			{Key: "gospels", Title: "복음서", Books: []Book{
				{"마태복음", 28, 1071},
				{"마가복음", 16, 678},
				{"누가복음", 24, 1151},
				{"요한복음", 21, 879},
			}},
			{Key: "acts", Title: "역사서", Books: []Book{
				{"사도행전", 28, 1007},
			}},
			{Key: "churchEpistles", Title: "교회 서신서", Books: []Book{
				{"로마서", 16, 433},
				{"고린도전서", 16, 437},
				{"고린도후서", 13, 257},
				{"갈라디아서", 6, 149},
				{"에베소서", 6, 155},
				{"빌립보서", 4, 104},
				{"골로새서", 4, 95},
				{"데살로니가전서", 5, 89},
				{"데살로니가후서", 3, 47},
			}},
			{Key: "pastoralAndGeneralEpistles", Title: "개인/일반 서신서", Books: []Book{
				{"디모데전서", 6, 113},
				{"디모데후서", 4, 83},
				{"디도서", 3, 46},
				{"빌레몬서", 1, 25},
				{"히브리서", 13, 303},
				{"야고보서", 5, 108},
				{"베드로전서", 5, 105},
				{"베드로후서", 3, 61},
				{"요한1서", 5, 105},
				{"요한2서", 1, 13},
				{"요한3서", 1, 14},
				{"유다서", 1, 25},
			}},
			{Key: "revelation", Title: "예언서", Books: []Book{
				{"요한계시록", 22, 404},
			}},
		},
	},
}

// AllBooks returns every book in canonical order.
func AllBooks() []Book {
	var books []Book
	for _, t := range Canon {
		for _, c := range t.Categories {
			books = append(books, c.Books...)
		}
	}
	return books
}

// FindBook looks a book up by exact name.
func FindBook(name string) (Book, bool) {
	for _, b := range AllBooks() {
		if b.Name == name {
			return b, true
		}
	}
	return Book{}, false
}

func groupThousands(n int) string {
	return humanize.Comma(int64(n))
}
