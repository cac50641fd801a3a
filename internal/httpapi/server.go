package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mpoulain/f1-bet-platform/internal/betting"
	"github.com/mpoulain/f1-bet-platform/internal/catalog"
	"github.com/mpoulain/f1-bet-platform/internal/httpapi/dto"
	"github.com/mpoulain/f1-bet-platform/internal/ledger"
	"github.com/mpoulain/f1-bet-platform/internal/shared/metrics"
	"github.com/mpoulain/f1-bet-platform/internal/stats"
	"github.com/mpoulain/f1-bet-platform/pkg/contracts/events"
)

// OddsSource captura a cotação corrente na hora do palpite
type OddsSource interface {
	CurrentOdds(ctx context.Context, raceID int64, driverName, market string) (decimal.Decimal, error)
}

// CatalogReader serve as consultas read-only de catálogo
type CatalogReader interface {
	ListRaces(ctx context.Context) ([]catalog.Race, error)
	RaceEntries(ctx context.Context, raceID int64) ([]catalog.RaceEntry, error)
}

// Publisher emite eventos de ciclo de vida depois do commit
type Publisher interface {
	PublishBetPlaced(context.Context, events.BetPlaced) error
	PublishBetSettled(context.Context, events.BetSettled) error
}

// Server expõe a API REST da plataforma de apostas
type Server struct {
	log     *zap.Logger
	store   betting.Store
	odds    OddsSource
	catalog CatalogReader
	stats   *stats.Aggregator
	publ    Publisher // nil desliga a publicação
}

func NewServer(log *zap.Logger, store betting.Store, odds OddsSource, cat CatalogReader, agg *stats.Aggregator, publ Publisher) *Server {
	return &Server{log: log, store: store, odds: odds, catalog: cat, stats: agg, publ: publ}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(withCORS)

	r.Post("/v1/bets", s.placeBet)
	r.Get("/v1/bets", s.listAllBets) // listagem administrativa
	r.Get("/v1/bets/{id}", s.getBet)
	r.Post("/v1/bets/{id}/settle", s.settleBet)

	r.Get("/v1/accounts/{id}/bets", s.listAccountBets)
	r.Get("/v1/accounts/{id}/stats", s.accountStats)

	r.Get("/v1/leaderboard", s.leaderboard)
	r.Get("/v1/admin/stats", s.platformStats)

	r.Get("/v1/races", s.listRaces)
	r.Get("/v1/races/{id}/drivers", s.raceDrivers)

	return r
}

// placeBet captura a cotação corrente e delega a unidade atômica
// débito+criação pro bet store
func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}

	// Mercado inválido cai aqui, antes da captura de cotação
	if !betting.Market(req.Market).Valid() {
		metrics.BetsRejected.WithLabelValues("validation").Inc()
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "unknown market " + strconv.Quote(req.Market)})
		return
	}

	captured, err := s.odds.CurrentOdds(r.Context(), req.RaceID, req.Selection, req.Market)
	if err != nil {
		if errors.Is(err, catalog.ErrRaceNotFound) || errors.Is(err, catalog.ErrOddsNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		s.log.Error("current odds", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "odds lookup failed"})
		return
	}

	// A aposta fica com o valor capturado agora; se o cliente viu outra
	// cotação, devolve conflito com a corrente em vez de apostar às cegas
	if req.Odds.IsPositive() && !req.Odds.Equal(captured) {
		metrics.BetsRejected.WithLabelValues("odds_conflict").Inc()
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "odds changed; current=" + captured.String()})
		return
	}

	bet, err := s.store.PlaceBet(r.Context(), betting.PlaceParams{
		AccountID: req.AccountID,
		RaceID:    req.RaceID,
		Market:    betting.Market(req.Market),
		Selection: req.Selection,
		Amount:    req.Amount,
		Odds:      captured,
	})
	if err != nil {
		metrics.BetsRejected.WithLabelValues(rejectReason(err)).Inc()
		s.writeError(w, err)
		return
	}

	metrics.BetsPlaced.WithLabelValues(string(bet.Market)).Inc()
	if s.publ != nil {
		_ = s.publ.PublishBetPlaced(r.Context(), events.BetPlaced{
			BetID:        bet.ID,
			AccountID:    bet.AccountID,
			RaceID:       bet.RaceID,
			Market:       string(bet.Market),
			Selection:    bet.Selection,
			Amount:       bet.Amount.StringFixed(2),
			Odds:         bet.Odds.String(),
			PotentialWin: bet.PotentialWin.StringFixed(2),
		})
	}

	writeJSON(w, http.StatusCreated, toBetResponse(bet))
}

// settleBet resolve a aposta; a segunda tentativa leva 409, nunca
// é engolida em silêncio
func (s *Server) settleBet(w http.ResponseWriter, r *http.Request) {
	betID := chi.URLParam(r, "id")

	var req dto.SettleBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}

	bet, err := s.store.Settle(r.Context(), betID, betting.Status(req.Result))
	if err != nil {
		s.writeError(w, err)
		return
	}

	metrics.BetsSettled.WithLabelValues(string(bet.Status)).Inc()
	if s.stats != nil && s.stats.Cache != nil {
		_ = s.stats.Cache.Invalidate(r.Context())
	}
	if s.publ != nil {
		ev := events.BetSettled{
			BetID:     bet.ID,
			AccountID: bet.AccountID,
			Status:    string(bet.Status),
		}
		if bet.Status == betting.StatusWon {
			ev.Payout = bet.PotentialWin.StringFixed(2)
		}
		_ = s.publ.PublishBetSettled(r.Context(), ev)
	}

	writeJSON(w, http.StatusOK, toBetResponse(bet))
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	bet, err := s.store.GetBet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBetResponse(bet))
}

func (s *Server) listAllBets(w http.ResponseWriter, r *http.Request) {
	bets, err := s.store.ListAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBetList(bets))
}

func (s *Server) listAccountBets(w http.ResponseWriter, r *http.Request) {
	bets, err := s.store.ListByAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBetList(bets))
}

func (s *Server) accountStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.stats.AccountStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := dto.AccountStatsResponse{
		TotalBets:    st.TotalBets,
		WonBets:      st.WonBets,
		LostBets:     st.LostBets,
		PendingBets:  st.PendingBets,
		TotalStaked:  st.TotalStaked,
		Profit:       st.Profit,
		ROI:          st.ROI,
		AverageStake: st.AverageStake,
	}
	if st.BestWin != nil {
		best := toBetResponse(*st.BestWin)
		resp.BestWin = &best
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	entries, err := s.stats.Leaderboard(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := dto.LeaderboardResponse{Leaderboard: make([]dto.LeaderboardEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Leaderboard = append(resp.Leaderboard, dto.LeaderboardEntryResponse{
			AccountID:   e.AccountID,
			Name:        e.Name,
			Email:       e.Email,
			TotalBets:   e.TotalBets,
			TotalWins:   e.TotalWins,
			TotalLosses: e.TotalLosses,
			WinRate:     e.WinRate,
			Profit:      e.Profit,
			Balance:     e.Balance,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) platformStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.stats.Platform(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.PlatformStatsResponse{
		TotalUsers:  st.TotalUsers,
		TotalRaces:  st.TotalRaces,
		ActiveBets:  st.ActiveBets,
		TotalVolume: st.TotalVolume,
	})
}

func (s *Server) listRaces(w http.ResponseWriter, r *http.Request) {
	races, err := s.catalog.ListRaces(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := dto.RaceListResponse{Races: make([]dto.RaceResponse, 0, len(races))}
	for _, rc := range races {
		resp.Races = append(resp.Races, dto.RaceResponse{
			ID:       rc.ID,
			Name:     rc.Name,
			Circuit:  rc.Circuit,
			City:     rc.City,
			Country:  rc.Country,
			Flag:     rc.Flag,
			Date:     rc.Date.Format("2006-01-02"),
			Laps:     rc.Laps,
			Distance: rc.Distance,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) raceDrivers(w http.ResponseWriter, r *http.Request) {
	raceID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid race id"})
		return
	}
	entries, err := s.catalog.RaceEntries(r.Context(), raceID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := dto.RaceDriverListResponse{Drivers: make([]dto.RaceDriverResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Drivers = append(resp.Drivers, dto.RaceDriverResponse{
			DriverID:   e.DriverID,
			Name:       e.DriverName,
			Team:       e.Team,
			WinnerOdds: e.WinnerOdds,
			PodiumOdds: e.PodiumOdds,
			PoleOdds:   e.PoleOdds,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeError traduz a taxonomia de erros do domínio pra status HTTP
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, betting.ErrValidation), errors.Is(err, betting.ErrInvalidOutcome):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, catalog.ErrRaceNotFound),
		errors.Is(err, catalog.ErrOddsNotFound),
		errors.Is(err, betting.ErrBetNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ledger.ErrAccountBanned):
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ledger.ErrInsufficientFunds), errors.Is(err, betting.ErrAlreadySettled):
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		s.log.Error("internal", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ledger.ErrAccountBanned):
		return "banned"
	case errors.Is(err, betting.ErrValidation):
		return "validation"
	case errors.Is(err, catalog.ErrRaceNotFound):
		return "race_not_found"
	case errors.Is(err, ledger.ErrAccountNotFound):
		return "account_not_found"
	}
	return "other"
}

func toBetResponse(b betting.Bet) dto.BetResponse {
	return dto.BetResponse{
		BetID:        b.ID,
		AccountID:    b.AccountID,
		RaceID:       b.RaceID,
		Market:       string(b.Market),
		Selection:    b.Selection,
		Amount:       b.Amount,
		Odds:         b.Odds,
		PotentialWin: b.PotentialWin,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toBetList(bets []betting.Bet) dto.BetListResponse {
	resp := dto.BetListResponse{Bets: make([]dto.BetResponse, 0, len(bets))}
	for _, b := range bets {
		resp.Bets = append(resp.Bets, toBetResponse(b))
	}
	return resp
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
