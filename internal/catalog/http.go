package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/jsonx"
)

// HTTPHandler exposes the catalog as JSON endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a catalog HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "catalog_http").Logger(),
	}
}

type categoriesResponse struct {
	Success    bool              `json:"success"`
	Categories map[string]string `json:"categories"`
}

type listResponse struct {
	Success         bool              `json:"success"`
	Questions       []trivia.Question `json:"questions"`
	TotalQuestions  int64             `json:"total_questions"`
	CurrentCategory string            `json:"current_category"`
	Categories      map[string]string `json:"categories"`
}

type categoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []trivia.Question `json:"questions"`
	TotalQuestions  int64             `json:"total_questions"`
	CurrentCategory string            `json:"current_category"`
}

type createdResponse struct {
	Success bool  `json:"success"`
	Created int64 `json:"created"`
}

type deletedResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

// questionsBody is the POST /questions payload. A non-null searchTerm turns the
// request into a search; otherwise the remaining fields create a question.
type questionsBody struct {
	SearchTerm *string      `json:"searchTerm"`
	Question   *string      `json:"question"`
	Answer     *string      `json:"answer"`
	Category   *jsonx.Int64 `json:"category"`
	Difficulty *jsonx.Int32 `json:"difficulty"`
}

// HandleCategories serves GET /categories.
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

// HandleQuestions serves GET /questions (list) and POST /questions (search or create).
func (h *HTTPHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.searchOrCreate(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

// HandleQuestion serves DELETE /questions/{question_id}.
func (h *HTTPHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "question_id")
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	deleted, err := h.svc.DeleteQuestion(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, deletedResponse{Success: true, Deleted: deleted})
}

// HandleCategoryQuestions serves GET /categories/{category_id}/questions.
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "category_id")
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	page, err := h.svc.QuestionsByCategory(r.Context(), id, pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.TotalQuestions,
		CurrentCategory: page.CurrentCategory,
	})
}

func (h *HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListQuestions(r.Context(), ListParams{
		Page:            pageParam(r),
		CurrentCategory: categoryParam(r),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, toListResponse(page))
}

func (h *HTTPHandler) searchOrCreate(w http.ResponseWriter, r *http.Request) {
	var body questionsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger := logging.FromContext(r.Context())
		logger.Debug().Err(err).Msg("invalid questions payload")
		httperrors.RespondBadRequest(w)
		return
	}

	if body.SearchTerm != nil {
		page, err := h.svc.SearchQuestions(r.Context(), SearchParams{
			Term:            *body.SearchTerm,
			Page:            pageParam(r),
			CurrentCategory: categoryParam(r),
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		httperrors.RespondJSON(w, http.StatusOK, toListResponse(page))
		return
	}

	id, err := h.svc.CreateQuestion(r.Context(), trivia.NewQuestion{
		Question:   body.Question,
		Answer:     body.Answer,
		Category:   body.Category.Ptr(),
		Difficulty: body.Difficulty.Ptr(),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	logger := logging.FromContext(r.Context())
	logger.Info().Int64("question_id", id).Msg("question created")
	httperrors.RespondJSON(w, http.StatusOK, createdResponse{Success: true, Created: id})
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if IsNotFound(err) {
		httperrors.RespondNotFound(w)
		return
	}
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("catalog request failed")
	httperrors.RespondInternalError(w)
}

func toListResponse(page QuestionPage) listResponse {
	return listResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.TotalQuestions,
		CurrentCategory: page.CurrentCategory,
		Categories:      page.Categories,
	}
}

// pageParam reads ?page=, defaulting to 1 when absent or not an integer.
func pageParam(r *http.Request) int {
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return 1
}

func categoryParam(r *http.Request) *string {
	q := r.URL.Query()
	if !q.Has("category") {
		return nil
	}
	v := q.Get("category")
	return &v
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
