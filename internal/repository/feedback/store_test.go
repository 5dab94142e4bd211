package feedback

import (
	"context"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"
)

func TestRecordHelpful(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HINCRBY", "feedback:42", "helpful_votes", "1")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStore(c, "")
	if err := s.RecordHelpful(context.Background(), "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordComplaint(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HINCRBY", "feedback:42", "complaints", "1")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStore(c, "")
	if err := s.RecordComplaint(context.Background(), "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncrementUsage_CustomPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HINCRBY", "fb:7", "usage_count", "1")).
		Return(mock.Result(mock.RedisInt64(3)))

	s := NewStore(c, "fb")
	if err := s.IncrementUsage(context.Background(), "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIncr_EmptyID(t *testing.T) {
	s := NewStore(nil, "")
	if err := s.RecordHelpful(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestCounters(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "feedback:42")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"helpful_votes": mock.RedisString("5"),
			"complaints":    mock.RedisString("1"),
			"usage_count":   mock.RedisString("120"),
		})))

	s := NewStore(c, "")
	got, err := s.Counters(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Counters{HelpfulVotes: 5, Complaints: 1, UsageCount: 120}
	if got != want {
		t.Errorf("counters = %+v, want %+v", got, want)
	}
}

func TestCounters_MissingHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "feedback:404")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{})))

	s := NewStore(c, "")
	got, err := s.Counters(context.Background(), "404")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (Counters{}) {
		t.Errorf("counters = %+v, want zero", got)
	}
}

func TestCounters_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "feedback:42")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStore(c, "")
	if _, err := s.Counters(context.Background(), "42"); err == nil {
		t.Fatal("expected error")
	}
}
