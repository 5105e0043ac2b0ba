package http

import (
	"net/http"
	"strconv"

	"expo-booth/common/errs"
	"expo-booth/common/vars"
	"expo-booth/model"
	"expo-booth/outbound/sqlgen"
)

type BoothHttp struct {
	Querier *sqlgen.Queries
}

func RegisterBoothHttp(mux *http.ServeMux, querier *sqlgen.Queries) *BoothHttp {
	in := &BoothHttp{Querier: querier}

	mux.HandleFunc("GET /api/events/{id}/booths", in.list)

	return in
}

// list serves booth availability from the in-memory snapshot refreshed
// by the cron. Reservations settled since the last refresh may still
// show as available; order creation re-checks against the database.
func (in *BoothHttp) list(w http.ResponseWriter, r *http.Request) {
	eventId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid event id"})
		return
	}

	booths := vars.GetEventBooths(eventId)
	if booths == nil {
		booths = []model.BoothResponse{}
	}

	writeJSONResponse(w, http.StatusOK, model.ListBoothsResponse{Booths: booths})
}
