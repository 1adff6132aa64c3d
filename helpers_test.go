package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// weddingDoc is a small event document: a couple, a pair who must be kept
// apart and a previously seated guest.
const weddingDoc = `{
  "events": [
    {
      "id": "e1",
      "name": "Wedding",
      "guests": [
        {"id": "A", "name": "Ann", "rsvpStatus": "confirmed",
         "relationships": [{"targetGuestId": "B", "type": "partner"}]},
        {"id": "B", "name": "Ben", "rsvpStatus": "confirmed",
         "relationships": [{"targetGuestId": "A", "type": "partner"}]}
      ],
      "tables": [{"id": "T1", "name": "Table 1", "capacity": 2}]
    },
    {
      "id": "e2",
      "name": "Gala",
      "guests": [
        {"id": "C", "firstName": "Cal", "lastName": "Reed", "rsvp": "confirmed",
         "relationships": [{"guestId": "D", "type": "avoid"}]},
        {"id": "D", "name": "Dee", "tableId": "T2"},
        {"id": "E", "name": "Eve", "rsvpStatus": "declined"}
      ],
      "tables": [{"id": "T2", "capacity": 2}, {"id": "T3", "capacity": 2}],
      "constraints": [{"id": "k1", "type": "must_not_sit_together", "guestIds": ["C", "D"]}],
      "options": {"maxIterations": 3, "preserveCurrentAssignments": true}
    }
  ]
}`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func weddingEvents(t *testing.T) []Event {
	t.Helper()
	events, err := parseEvents(weddingDoc)
	require.NoError(t, err)
	return events
}
