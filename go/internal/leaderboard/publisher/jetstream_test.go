package publisher

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/events"
)

func TestMessage(t *testing.T) {
	p := &JetStreamPublisher{config: DefaultJetStreamConfig()}
	id := uuid.New()
	snap := &leaderboard.Snapshot{TournamentID: id, Version: 3}

	msg, env, err := p.message(snap, time.Now())
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if want := "leaderboard.events." + id.String(); msg.Subject != want {
		t.Fatalf("subject = %s, want %s", msg.Subject, want)
	}
	if msg.Header.Get("Event-ID") != env.EventID || msg.Header.Get("Event-Type") != events.TypeLeaderboardRefreshed {
		t.Fatalf("headers = %v", msg.Header)
	}

	_, gotID, err := events.ParseEnvelope(msg.Data)
	if err != nil {
		t.Fatalf("ParseEnvelope: %v", err)
	}
	if gotID != id {
		t.Fatalf("tournament id = %s", gotID)
	}
}

func TestStreamConfigCoversSubjects(t *testing.T) {
	p := &JetStreamPublisher{config: DefaultJetStreamConfig()}
	sc := p.streamConfig()
	if len(sc.Subjects) != 1 || sc.Subjects[0] != "leaderboard.events.>" {
		t.Fatalf("subjects = %v", sc.Subjects)
	}
	if !isStreamConfigEqual(sc, p.streamConfig()) {
		t.Fatal("identical configs should compare equal")
	}
}
