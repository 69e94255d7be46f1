package knowledge

import (
	"fmt"
	"sync"
	"testing"
)

func TestStore_AddReturnsSequentialIds(t *testing.T) {
	s := NewStore()

	for want := 0; want < 5; want++ {
		got := s.Add(fmt.Sprintf("document %d", want), "test", nil)
		if got != want {
			t.Errorf("Add returned id %d, want %d", got, want)
		}
	}
	if s.Count() != 5 {
		t.Errorf("Count got %d, want 5", s.Count())
	}
}

func TestStore_Search(t *testing.T) {
	s := NewStore()
	s.Add("The invoice total is $500", "billing", nil)
	s.Add("Cats are small domestic animals", "wiki", nil)
	s.Add("Invoice processing takes two days", "billing", nil)
	s.Add("Another invoice related document", "billing", nil)
	s.Add("A fourth invoice mention here", "billing", nil)

	tests := []struct {
		name      string
		query     string
		limit     int
		wantCount int
		wantFirst string
	}{
		{
			name:      "Matches_In_Insertion_Order",
			query:     "invoice",
			limit:     10,
			wantCount: 4,
			wantFirst: "The invoice total is $500",
		},
		{
			name:      "Limit_Caps_Results",
			query:     "invoice",
			limit:     3,
			wantCount: 3,
			wantFirst: "The invoice total is $500",
		},
		{
			name:      "Case_Insensitive",
			query:     "INVOICE",
			limit:     10,
			wantCount: 4,
			wantFirst: "The invoice total is $500",
		},
		{
			name:      "No_Match",
			query:     "spaceship",
			limit:     10,
			wantCount: 0,
		},
		{
			name:      "Short_Words_Only_Matches_Everything",
			query:     "a is to",
			limit:     3,
			wantCount: 3,
			wantFirst: "The invoice total is $500",
		},
		{
			name:      "Empty_Query_Matches_Everything",
			query:     "",
			limit:     2,
			wantCount: 2,
			wantFirst: "The invoice total is $500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := s.Search(tt.query, tt.limit)
			if len(results) != tt.wantCount {
				t.Fatalf("Search(%q) returned %d docs, want %d", tt.query, len(results), tt.wantCount)
			}
			if tt.wantCount > 0 && results[0].Content != tt.wantFirst {
				t.Errorf("first result got %q, want %q", results[0].Content, tt.wantFirst)
			}
		})
	}
}

func TestStore_SearchEmptyStore(t *testing.T) {
	s := NewStore()
	if results := s.Search("anything", 5); len(results) != 0 {
		t.Errorf("empty store returned %d docs, want 0", len(results))
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"Lowercases_And_Splits", "Hello World", []string{"hello", "world"}},
		{"Drops_Short_Words", "a is to the cat", []string{"the", "cat"}},
		{"Punctuation_Is_A_Separator", "what's the invoice-total?", []string{"what", "the", "invoice", "total"}},
		{"Keeps_Numbers", "order 12345 status", []string{"order", "12345", "status"}},
		{"Empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) got %v, want %v", tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tokenize(%q)[%d] got %q, want %q", tt.query, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStore_ConcurrentAddAndSearch(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Add(fmt.Sprintf("concurrent doc %d", n), "test", nil)
		}(i)
		go func() {
			defer wg.Done()
			s.Search("concurrent", 3)
		}()
	}
	wg.Wait()

	if s.Count() != 50 {
		t.Errorf("Count got %d, want 50", s.Count())
	}
}
