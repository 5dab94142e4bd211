package lexical

import (
	"context"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"
)

func TestSearch_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[1] == "idx:articles"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1), // total
			mock.RedisString("article:42"),
			mock.RedisString("2.5"), // BM25 score
			mock.RedisArray(
				mock.RedisString("title"),
				mock.RedisString("Configurar VPN"),
				mock.RedisString("content"),
				mock.RedisString("Passo a passo"),
				mock.RedisString("category"),
				mock.RedisString("TI"),
				mock.RedisString("helpful_votes"),
				mock.RedisString("7"),
				mock.RedisString("date_mod"),
				mock.RedisString("2026-08-01"),
			),
		)))

	s := NewStore(c, "idx:articles")
	hits, err := s.Search(context.Background(), "configurar vpn", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	h := hits[0]
	if h.ID != "42" {
		t.Errorf("id = %q, want 42", h.ID)
	}
	if h.Payload.Title != "Configurar VPN" || h.Payload.Category != "TI" {
		t.Errorf("payload = %+v", h.Payload)
	}
	if h.Payload.HelpfulVotes != 7 {
		t.Errorf("helpful_votes = %d, want 7", h.Payload.HelpfulVotes)
	}
	if h.Payload.Metadata["date_mod"] != "2026-08-01" {
		t.Errorf("metadata = %v", h.Payload.Metadata)
	}
}

func TestSearch_EscapesQuerySyntax(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			// The raw "@" and "-" must arrive escaped inside the query arg.
			return cmd[0] == "FT.SEARCH" && cmd[2] == `@search_text:(email \@corp \- urgente)`
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStore(c, "idx:articles")
	if _, err := s.Search(context.Background(), "email @corp - urgente", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStore(c, "idx:articles")
	hits, err := s.Search(context.Background(), "nada aqui", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestSearch_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStore(c, "idx:articles")
	if _, err := s.Search(context.Background(), "vpn", 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearch_Validation(t *testing.T) {
	s := &Store{}
	ctx := context.Background()

	if _, err := s.Search(ctx, "", 10); err == nil {
		t.Error("expected error for empty query")
	}
	if _, err := s.Search(ctx, "vpn", 0); err == nil {
		t.Error("expected error for non-positive topK")
	}
}

func TestPing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStore(c, "idx:articles")
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
