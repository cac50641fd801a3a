package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mpoulain/f1-bet-platform/internal/betting"
	"github.com/mpoulain/f1-bet-platform/internal/catalog"
	"github.com/mpoulain/f1-bet-platform/internal/httpapi/dto"
	"github.com/mpoulain/f1-bet-platform/internal/ledger"
	"github.com/mpoulain/f1-bet-platform/internal/stats"
	"github.com/mpoulain/f1-bet-platform/pkg/contracts/events"
)

// recordingPublisher captura os eventos emitidos, sem broker de verdade
type recordingPublisher struct {
	placed  []events.BetPlaced
	settled []events.BetSettled
}

func (p *recordingPublisher) PublishBetPlaced(_ context.Context, e events.BetPlaced) error {
	p.placed = append(p.placed, e)
	return nil
}

func (p *recordingPublisher) PublishBetSettled(_ context.Context, e events.BetSettled) error {
	p.settled = append(p.settled, e)
	return nil
}

type testEnv struct {
	router  http.Handler
	ledger  *ledger.Memory
	store   *betting.Memory
	race    catalog.Race
	account ledger.Account
	publ    *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	l := ledger.NewMemory()
	c := catalog.NewMemory()
	store := betting.NewMemory(l, c)

	race := c.AddRace(catalog.Race{
		Name:    "Italian Grand Prix",
		Circuit: "Autodromo Nazionale Monza",
		City:    "Monza",
		Country: "Italy",
		Date:    time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC),
		Laps:    53,
	})
	driver := c.AddDriver(catalog.Driver{Name: "Max Verstappen", Team: "Red Bull Racing", Number: 1})
	c.SetOdds(catalog.RaceEntry{
		RaceID:     race.ID,
		DriverID:   driver.ID,
		DriverName: driver.Name,
		Team:       driver.Team,
		WinnerOdds: mustDec(t, "2.50"),
		PodiumOdds: mustDec(t, "1.50"),
		PoleOdds:   mustDec(t, "2.00"),
	})

	acc := l.CreateAccount("player@example.com", "Player One", mustDec(t, "1000.00"))

	publ := &recordingPublisher{}
	agg := &stats.Aggregator{Accounts: l, Bets: store, Races: c}
	srv := NewServer(zap.NewNop(), store, c, c, agg, publ)

	return &testEnv{
		router:  srv.Router(),
		ledger:  l,
		store:   store,
		race:    race,
		account: acc,
		publ:    publ,
	}
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) placeBody(amount, odds string) string {
	return fmt.Sprintf(`{"accountId":%q,"raceId":%d,"market":"winner","selection":"Max Verstappen","amount":%q,"odds":%q}`,
		e.account.ID, e.race.ID, amount, odds)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestPlaceBetEndpoint(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/v1/bets", env.placeBody("100.00", "2.50"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d body = %s, want 201", rec.Code, rec.Body)
		}
		var resp dto.BetResponse
		decodeJSON(t, rec, &resp)
		if !resp.PotentialWin.Equal(mustDec(t, "250.00")) {
			t.Errorf("potentialWin = %s, want 250.00", resp.PotentialWin)
		}
		if resp.Status != "pending" {
			t.Errorf("status = %s, want pending", resp.Status)
		}

		acc, _ := env.ledger.Get(context.Background(), env.account.ID)
		if !acc.Balance.Equal(mustDec(t, "900.00")) {
			t.Errorf("balance = %s, want 900.00", acc.Balance)
		}
		if len(env.publ.placed) != 1 || env.publ.placed[0].BetID != resp.BetID {
			t.Errorf("placed events = %+v, want one for %s", env.publ.placed, resp.BetID)
		}
	})

	t.Run("OmittedOddsUsesCaptured", func(t *testing.T) {
		env := newTestEnv(t)
		body := fmt.Sprintf(`{"accountId":%q,"raceId":%d,"market":"winner","selection":"Max Verstappen","amount":"40.00"}`,
			env.account.ID, env.race.ID)
		rec := env.do(t, http.MethodPost, "/v1/bets", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d body = %s, want 201", rec.Code, rec.Body)
		}
		var resp dto.BetResponse
		decodeJSON(t, rec, &resp)
		if !resp.Odds.Equal(mustDec(t, "2.50")) {
			t.Errorf("odds = %s, want captured 2.50", resp.Odds)
		}
	})

	t.Run("OddsConflict", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/v1/bets", env.placeBody("100.00", "3.00"))
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
		acc, _ := env.ledger.Get(context.Background(), env.account.ID)
		if !acc.Balance.Equal(mustDec(t, "1000.00")) {
			t.Errorf("balance = %s, want untouched 1000.00", acc.Balance)
		}
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/v1/bets", env.placeBody("2000.00", "2.50"))
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("ValidationError", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/v1/bets", env.placeBody("0.00", "2.50"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("BadJSON", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/v1/bets", "{not json")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("UnknownRace", func(t *testing.T) {
		env := newTestEnv(t)
		body := fmt.Sprintf(`{"accountId":%q,"raceId":999,"market":"winner","selection":"Max Verstappen","amount":"10.00"}`,
			env.account.ID)
		rec := env.do(t, http.MethodPost, "/v1/bets", body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		env := newTestEnv(t)
		body := fmt.Sprintf(`{"accountId":%q,"raceId":%d,"market":"winner","selection":"Nobody","amount":"10.00"}`,
			env.account.ID, env.race.ID)
		rec := env.do(t, http.MethodPost, "/v1/bets", body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("BannedAccount", func(t *testing.T) {
		env := newTestEnv(t)
		if err := env.ledger.SetBanned(env.account.ID, true); err != nil {
			t.Fatalf("set banned: %v", err)
		}
		rec := env.do(t, http.MethodPost, "/v1/bets", env.placeBody("10.00", "2.50"))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})
}

func TestSettleBetEndpoint(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/v1/bets", env.placeBody("100.00", "2.50"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("place status = %d", rec.Code)
	}
	var placed dto.BetResponse
	decodeJSON(t, rec, &placed)

	rec = env.do(t, http.MethodPost, "/v1/bets/"+placed.BetID+"/settle", `{"result":"won"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("settle status = %d body = %s, want 200", rec.Code, rec.Body)
	}
	var settled dto.BetResponse
	decodeJSON(t, rec, &settled)
	if settled.Status != "won" {
		t.Errorf("status = %s, want won", settled.Status)
	}

	acc, _ := env.ledger.Get(context.Background(), env.account.ID)
	if !acc.Balance.Equal(mustDec(t, "1150.00")) {
		t.Errorf("balance = %s, want 1150.00", acc.Balance)
	}
	if len(env.publ.settled) != 1 || env.publ.settled[0].Payout != "250.00" {
		t.Errorf("settled events = %+v, want one with payout 250.00", env.publ.settled)
	}

	t.Run("SecondSettleConflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/bets/"+placed.BetID+"/settle", `{"result":"lost"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
		acc, _ := env.ledger.Get(context.Background(), env.account.ID)
		if !acc.Balance.Equal(mustDec(t, "1150.00")) {
			t.Errorf("balance = %s, want unchanged 1150.00", acc.Balance)
		}
	})

	t.Run("InvalidResult", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/bets/"+placed.BetID+"/settle", `{"result":"pending"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("UnknownBet", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/bets/no-such-bet/settle", `{"result":"won"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestAccountEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/bets", env.placeBody("100.00", "2.50"))
	var placed dto.BetResponse
	decodeJSON(t, rec, &placed)
	env.do(t, http.MethodPost, "/v1/bets/"+placed.BetID+"/settle", `{"result":"won"}`)
	env.do(t, http.MethodPost, "/v1/bets", env.placeBody("50.00", "2.50"))

	t.Run("Stats", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/accounts/"+env.account.ID+"/stats", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp dto.AccountStatsResponse
		decodeJSON(t, rec, &resp)
		if resp.TotalBets != 2 || resp.WonBets != 1 || resp.PendingBets != 1 {
			t.Errorf("counts = %d/%d/%d, want 2/1/1", resp.TotalBets, resp.WonBets, resp.PendingBets)
		}
		if !resp.Profit.Equal(mustDec(t, "250.00")) {
			t.Errorf("profit = %s, want 250.00 (pendente fora do lucro)", resp.Profit)
		}
		if resp.BestWin == nil || resp.BestWin.BetID != placed.BetID {
			t.Errorf("bestWin = %+v, want bet %s", resp.BestWin, placed.BetID)
		}
	})

	t.Run("StatsUnknownAccount", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/accounts/ghost/stats", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("BetsNewestFirst", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/accounts/"+env.account.ID+"/bets", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp dto.BetListResponse
		decodeJSON(t, rec, &resp)
		if len(resp.Bets) != 2 {
			t.Fatalf("len = %d, want 2", len(resp.Bets))
		}
		if !resp.Bets[0].Amount.Equal(mustDec(t, "50.00")) {
			t.Errorf("first bet amount = %s, want newest (50.00)", resp.Bets[0].Amount)
		}
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	env := newTestEnv(t)
	second := env.ledger.CreateAccount("runnerup@example.com", "Runner Up", mustDec(t, "1000.00"))

	rec := env.do(t, http.MethodPost, "/v1/bets", env.placeBody("100.00", "2.50"))
	var placed dto.BetResponse
	decodeJSON(t, rec, &placed)
	env.do(t, http.MethodPost, "/v1/bets/"+placed.BetID+"/settle", `{"result":"won"}`)

	rec = env.do(t, http.MethodGet, "/v1/leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp dto.LeaderboardResponse
	decodeJSON(t, rec, &resp)
	if len(resp.Leaderboard) != 2 {
		t.Fatalf("len = %d, want 2", len(resp.Leaderboard))
	}
	if resp.Leaderboard[0].AccountID != env.account.ID {
		t.Errorf("leader = %s, want %s", resp.Leaderboard[0].AccountID, env.account.ID)
	}
	if !resp.Leaderboard[0].Profit.Equal(mustDec(t, "250.00")) {
		t.Errorf("leader profit = %s, want 250.00", resp.Leaderboard[0].Profit)
	}
	if resp.Leaderboard[1].AccountID != second.ID || resp.Leaderboard[1].TotalBets != 0 {
		t.Errorf("second = %+v, want idle account %s", resp.Leaderboard[1], second.ID)
	}

	t.Run("Limit", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/leaderboard?limit=1", "")
		var resp dto.LeaderboardResponse
		decodeJSON(t, rec, &resp)
		if len(resp.Leaderboard) != 1 {
			t.Errorf("len = %d, want 1", len(resp.Leaderboard))
		}
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/leaderboard?limit=abc", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestAdminAndCatalogEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/v1/bets", env.placeBody("100.00", "2.50"))

	t.Run("PlatformStats", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/admin/stats", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp dto.PlatformStatsResponse
		decodeJSON(t, rec, &resp)
		if resp.TotalUsers != 1 || resp.TotalRaces != 1 || resp.ActiveBets != 1 {
			t.Errorf("stats = %+v, want 1 user, 1 race, 1 active bet", resp)
		}
		if !resp.TotalVolume.Equal(mustDec(t, "100.00")) {
			t.Errorf("totalVolume = %s, want 100.00", resp.TotalVolume)
		}
	})

	t.Run("Races", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/races", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp dto.RaceListResponse
		decodeJSON(t, rec, &resp)
		if len(resp.Races) != 1 || resp.Races[0].Name != "Italian Grand Prix" {
			t.Errorf("races = %+v", resp.Races)
		}
		if resp.Races[0].Date != "2025-09-07" {
			t.Errorf("date = %s, want 2025-09-07", resp.Races[0].Date)
		}
	})

	t.Run("RaceDrivers", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, fmt.Sprintf("/v1/races/%d/drivers", env.race.ID), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp dto.RaceDriverListResponse
		decodeJSON(t, rec, &resp)
		if len(resp.Drivers) != 1 || resp.Drivers[0].Name != "Max Verstappen" {
			t.Errorf("drivers = %+v", resp.Drivers)
		}
	})

	t.Run("RaceDriversUnknownRace", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/races/999/drivers", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("ListAllBets", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/bets", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp dto.BetListResponse
		decodeJSON(t, rec, &resp)
		if len(resp.Bets) != 1 {
			t.Errorf("len = %d, want 1", len(resp.Bets))
		}
	})
}
