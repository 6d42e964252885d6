package controllers

import (
	"net/http"
	"strconv"

	"github.com/forkasbib/restopos-backend/api/middleware"
	"github.com/forkasbib/restopos-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if restaurantID := middleware.RestaurantIDFromContext(r.Context()); restaurantID > 0 {
			payload["restaurant_id"] = strconv.FormatInt(restaurantID, 10)
		}
		responses.WriteSuccess(w, payload)
	}
}
