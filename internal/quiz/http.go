package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/jsonx"
)

// HTTPHandler exposes the quiz selector.
type HTTPHandler struct {
	selector *Selector
	logger   zerolog.Logger
}

func NewHTTPHandler(selector *Selector, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		selector: selector,
		logger:   logger.With().Str("component", "quiz_http").Logger(),
	}
}

type quizBody struct {
	PreviousQuestions []jsonx.Int64 `json:"previous_questions"`
	QuizCategory      *struct {
		ID *jsonx.Int64 `json:"id"`
	} `json:"quiz_category"`
}

type quizResponse struct {
	Success  bool            `json:"success"`
	Question trivia.Question `json:"question"`
}

// HandleNext serves POST /quizzes.
func (h *HTTPHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var body quizBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger := logging.FromContext(r.Context())
		logger.Debug().Err(err).Msg("invalid quiz payload")
		httperrors.RespondBadRequest(w)
		return
	}

	req := Request{PreviousQuestions: make([]int64, 0, len(body.PreviousQuestions))}
	for _, id := range body.PreviousQuestions {
		req.PreviousQuestions = append(req.PreviousQuestions, int64(id))
	}
	if body.QuizCategory != nil {
		req.QuizCategory = &Category{ID: body.QuizCategory.ID.Ptr()}
	}

	question, err := h.selector.Next(r.Context(), req)
	switch {
	case err == nil:
		httperrors.RespondJSON(w, http.StatusOK, quizResponse{Success: true, Question: question})
	case errors.Is(err, ErrCategoryRequired):
		httperrors.RespondBadRequest(w)
	case errors.Is(err, ErrNoQuestionsRemaining):
		httperrors.RespondConflict(w)
	default:
		h.logger.Error().Err(err).Msg("quiz selection failed")
		httperrors.RespondInternalError(w)
	}
}
