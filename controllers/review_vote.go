package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"ranking-uni/models"
	"ranking-uni/utils"

	"github.com/sirupsen/logrus"
)

type ReviewVoteController struct{}

type votePayload struct {
	ReviewID int    `json:"review_id"`
	Vote     string `json:"vote"`
}

// ApplyVote runs the per-(review, user) vote state machine. Repeating the
// current direction clears the vote, the opposite direction flips it, and a
// first vote inserts a row. Exactly one write is issued; tallies are then
// recomputed by exact counting so the response reflects committed state.
func ApplyVote(db *sql.DB, reviewID, userID int, direction string) (models.VoteTally, error) {
	normalized := 1
	if direction == "down" {
		normalized = -1
	}

	var existingID, existingVote int
	err := db.QueryRow(
		"SELECT id, vote FROM review_votes WHERE review_id = ? AND user_id = ?",
		reviewID, userID,
	).Scan(&existingID, &existingVote)

	userVote := direction
	switch {
	case err == sql.ErrNoRows:
		_, err = db.Exec(
			"INSERT INTO review_votes (review_id, user_id, vote) VALUES (?, ?, ?)",
			reviewID, userID, normalized,
		)
		if err != nil {
			return models.VoteTally{}, models.WrapStore(err, "insert vote")
		}
	case err != nil:
		return models.VoteTally{}, models.WrapStore(err, "look up existing vote")
	case existingVote == normalized:
		// Toggle off.
		if _, err = db.Exec("DELETE FROM review_votes WHERE id = ?", existingID); err != nil {
			return models.VoteTally{}, models.WrapStore(err, "delete vote")
		}
		userVote = ""
	default:
		// Flip.
		if _, err = db.Exec("UPDATE review_votes SET vote = ? WHERE id = ?", normalized, existingID); err != nil {
			return models.VoteTally{}, models.WrapStore(err, "update vote")
		}
	}

	tally := models.VoteTally{UserVote: userVote}
	err = db.QueryRow(
		"SELECT COUNT(*) FROM review_votes WHERE review_id = ? AND vote = 1", reviewID,
	).Scan(&tally.Upvotes)
	if err != nil {
		return models.VoteTally{}, models.WrapStore(err, "count upvotes")
	}
	err = db.QueryRow(
		"SELECT COUNT(*) FROM review_votes WHERE review_id = ? AND vote = -1", reviewID,
	).Scan(&tally.Downvotes)
	if err != nil {
		return models.VoteTally{}, models.WrapStore(err, "count downvotes")
	}
	return tally, nil
}

func (vc *ReviewVoteController) CreateVote(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload votePayload

		contentType := r.Header.Get("Content-Type")
		if strings.Contains(contentType, "application/json") {
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid JSON"})
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid form body"})
				return
			}
			payload.ReviewID, _ = utils.StrToInt(r.FormValue("review_id"))
			payload.Vote = r.FormValue("vote")
		}

		if payload.ReviewID <= 0 || (payload.Vote != "up" && payload.Vote != "down") {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "review_id and valid vote are required"})
			return
		}

		userID, err := ResolveSession(r)
		if err != nil {
			ClearSessionCookies(w)
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Unauthorized"})
			return
		}

		tally, err := ApplyVote(db, payload.ReviewID, userID, payload.Vote)
		if err != nil {
			logrus.WithError(err).Error("failed to apply vote")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}

		utils.ResponseJSON(w, tally)
	}
}
