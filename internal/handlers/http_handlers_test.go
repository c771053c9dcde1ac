package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"luckymint/internal/ledger"
	"luckymint/internal/models"
	"luckymint/internal/notify"
	"luckymint/internal/random"
	"luckymint/internal/services"
	"luckymint/internal/storage"
)

func newTestRouter(draws ...uint64) (*gin.Engine, *services.MintService) {
	gin.SetMode(gin.TestMode)

	recent := notify.NewMemorySink(10)
	svc := services.NewMintService(
		storage.NewMemoryStore(),
		random.NewSequence(draws...),
		ledger.NewMemoryLedger(),
		recent,
	)

	router := gin.New()
	NewHTTPHandler(svc, recent, services.DefaultMintFee).RegisterRoutes(router)
	return router, svc
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHTTPHandler_MintFlow(t *testing.T) {
	// First draw is the round's lucky number, second is the mint.
	router, _ := newTestRouter(7, 50)

	w := doJSON(t, router, http.MethodPost, "/rounds", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, but got %d: %s", w.Code, w.Body.String())
	}
	var round models.Round
	if err := json.Unmarshal(w.Body.Bytes(), &round); err != nil {
		t.Fatalf("Failed to decode round: %v", err)
	}
	if round.LuckyNumber != 7 || round.RemainingSupply != 10000 {
		t.Errorf("Unexpected round: %+v", round)
	}

	w = doJSON(t, router, http.MethodPost, "/mint",
		`{"participantId":"alice","roundId":"`+round.ID+`","fee":10}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, but got %d: %s", w.Code, w.Body.String())
	}
	var record models.MintRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("Failed to decode record: %v", err)
	}
	if record.Amount != 4500 || record.Probability != 50 {
		t.Errorf("Unexpected record: %+v", record)
	}

	w = doJSON(t, router, http.MethodGet, "/rounds/"+round.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, but got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &round); err != nil {
		t.Fatalf("Failed to decode round: %v", err)
	}
	if round.RemainingSupply != 5500 || round.JackpotPool != 500 {
		t.Errorf("Round state not visible over HTTP: %+v", round)
	}

	w = doJSON(t, router, http.MethodGet, "/participants/alice", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, but got %d", w.Code)
	}
	var participant models.Participant
	if err := json.Unmarshal(w.Body.Bytes(), &participant); err != nil {
		t.Fatalf("Failed to decode participant: %v", err)
	}
	if participant.TotalMints != 1 || participant.BestProbability != 50 {
		t.Errorf("Unexpected participant: %+v", participant)
	}

	w = doJSON(t, router, http.MethodGet, "/mints", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, but got %d", w.Code)
	}
	var records []models.MintRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("Failed to decode records: %v", err)
	}
	if len(records) != 1 || records[0].ID != record.ID {
		t.Errorf("Unexpected records: %+v", records)
	}
}

func TestHTTPHandler_MintErrors(t *testing.T) {
	t.Run("Insufficient fee is rejected before the engine runs", func(t *testing.T) {
		router, _ := newTestRouter(7, 50)

		w := doJSON(t, router, http.MethodPost, "/rounds", "")
		var round models.Round
		json.Unmarshal(w.Body.Bytes(), &round)

		w = doJSON(t, router, http.MethodPost, "/mint",
			`{"participantId":"alice","roundId":"`+round.ID+`","fee":1}`)
		if w.Code != http.StatusPaymentRequired {
			t.Fatalf("Expected 402, but got %d: %s", w.Code, w.Body.String())
		}

		// The round is untouched: the next (sufficient) mint still
		// consumes the second sequence draw.
		w = doJSON(t, router, http.MethodGet, "/rounds/"+round.ID, "")
		json.Unmarshal(w.Body.Bytes(), &round)
		if round.TotalMints != 0 || round.RemainingSupply != 10000 {
			t.Errorf("Round changed on a rejected fee: %+v", round)
		}
	})

	t.Run("Missing round maps to 404", func(t *testing.T) {
		router, _ := newTestRouter(50)
		w := doJSON(t, router, http.MethodPost, "/mint",
			`{"participantId":"alice","roundId":"missing","fee":10}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, but got %d", w.Code)
		}
	})

	t.Run("Cooldown maps to 429", func(t *testing.T) {
		router, _ := newTestRouter(7, 50, 60)
		w := doJSON(t, router, http.MethodPost, "/rounds", "")
		var round models.Round
		json.Unmarshal(w.Body.Bytes(), &round)

		body := `{"participantId":"alice","roundId":"` + round.ID + `","fee":10}`
		if w := doJSON(t, router, http.MethodPost, "/mint", body); w.Code != http.StatusOK {
			t.Fatalf("Expected 200, but got %d", w.Code)
		}
		if w := doJSON(t, router, http.MethodPost, "/mint", body); w.Code != http.StatusTooManyRequests {
			t.Fatalf("Expected 429, but got %d", w.Code)
		}
	})

	t.Run("Malformed body maps to 400", func(t *testing.T) {
		router, _ := newTestRouter(50)
		w := doJSON(t, router, http.MethodPost, "/mint", `{"fee":10}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, but got %d", w.Code)
		}
	})

	t.Run("Unknown participant maps to 404", func(t *testing.T) {
		router, _ := newTestRouter(50)
		w := doJSON(t, router, http.MethodGet, "/participants/nobody", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, but got %d", w.Code)
		}
	})
}
