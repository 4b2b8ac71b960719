package handler

import (
	"net/http"
	"strconv"

	"github.com/pkordes/sf-experiences/backend/internal/share"
)

// PrintItinerary handles GET /itineraries/{id}/print.pdf.
func (s *Server) PrintItinerary(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id")
	if !ok {
		return
	}
	it, err := s.itineraries.Get(r.Context(), ids[0])
	if err != nil {
		writeServiceError(w, r, err, itineraryNotFound)
		return
	}

	pdf, err := share.RenderPDF(it, share.ShareURL(s.shareBaseURL, it.ID))
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary-`+it.ID+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(pdf)
}

// ItineraryQRCode handles GET /itineraries/{id}/qr.png. Optional ?size=
// sets the edge length in pixels (64-1024).
func (s *Server) ItineraryQRCode(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id")
	if !ok {
		return
	}
	var size *int
	if err := queryParam(r, "size", &size); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	px := share.DefaultQRSize
	if size != nil {
		px = min(max(*size, 64), 1024)
	}

	it, err := s.itineraries.Get(r.Context(), ids[0])
	if err != nil {
		writeServiceError(w, r, err, itineraryNotFound)
		return
	}

	png, err := share.QRCode(share.ShareURL(s.shareBaseURL, it.ID), px)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(png)
}
