package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"trivia-client/internal/app"
	"trivia-client/internal/domain"
	"trivia-client/internal/presenter"
)

// WSHandler runs one quiz controller per websocket connection.
type WSHandler struct {
	categories app.CategoryRepository
	questions  app.QuestionFetcher
	scores     *app.HighScores
	opts       app.Options
	upgrader   websocket.Upgrader
}

func NewWSHandler(categories app.CategoryRepository, questions app.QuestionFetcher, scores *app.HighScores, opts app.Options) *WSHandler {
	return &WSHandler{
		categories: categories,
		questions:  questions,
		scores:     scores,
		opts:       opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Choice int `json:"choice"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and drives a quiz session from the socket's messages.
func (h *WSHandler) ServeWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return nil
	}
	defer conn.Close()

	connID := uuid.NewString()
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws %s write error: %v", connID, err)
				cancel()
				// Drain so producers never block on a dead socket.
				for range send {
				}
				return
			}
		}
	}()

	view := &wsPresenter{send: send, done: ctx.Done()}
	opts := h.opts
	if opts.Logger == nil {
		opts.Logger = log.New(log.Writer(), "ws "+connID+" ", log.Flags())
	}
	ctrl := app.NewController(h.categories, h.questions, h.scores, view, opts)

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := ctrl.Run(ctx); err != nil {
			log.Printf("ws %s controller: %v", connID, err)
		}
	}()

	log.Printf("ws %s connected", connID)
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		ev, err := decodeEvent(inbound)
		if err != nil {
			view.emit("error", errorPayload{Message: err.Error()})
			continue
		}
		ctrl.Post(ev)
	}
	log.Printf("ws %s disconnected", connID)

	cancel()
	ctrl.Close()
	<-runDone
	close(send)
	<-writerDone
	return nil
}

func decodeEvent(msg inboundMessage) (app.Event, error) {
	switch msg.Type {
	case "start":
		var req domain.SetupRequest
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				return app.Event{}, errInvalidPayload("start")
			}
		}
		return app.StartEvent(req), nil
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return app.Event{}, errInvalidPayload("answer")
		}
		return app.AnswerEvent(payload.Choice), nil
	case "restart":
		return app.RestartEvent(), nil
	}
	return app.Event{}, errUnsupported
}

// wsPresenter turns controller output into outbound messages.
type wsPresenter struct {
	send chan<- outboundMessage[any]
	done <-chan struct{}
}

type questionPayload struct {
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
}

type progressPayload struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Label   string `json:"label"`
}

type scorePayload struct {
	Score     int `json:"score"`
	HighScore int `json:"highScore"`
}

type feedbackPayload struct {
	domain.AnswerResult
	Message string `json:"message"`
}

type resultsPayload struct {
	FinalScore int    `json:"finalScore"`
	HighScore  int    `json:"highScore"`
	NewRecord  bool   `json:"newRecord"`
	Message    string `json:"message"`
}

func (p *wsPresenter) emit(kind string, payload any) {
	select {
	case p.send <- outboundMessage[any]{Type: kind, Payload: payload}:
	case <-p.done:
	}
}

func (p *wsPresenter) ShowSetup() { p.emit("setup", struct{}{}) }

func (p *wsPresenter) RenderCategories(categories []domain.Category) {
	if categories == nil {
		categories = []domain.Category{}
	}
	p.emit("categories", categories)
}

func (p *wsPresenter) ShowQuiz() { p.emit("quiz", struct{}{}) }

func (p *wsPresenter) RenderQuestion(text string, choices []domain.AnswerChoice) {
	texts := make([]string, len(choices))
	for i, c := range choices {
		texts[i] = c.Text
	}
	p.emit("question", questionPayload{Text: text, Choices: texts})
}

func (p *wsPresenter) RenderProgress(current, total int) {
	p.emit("progress", progressPayload{Current: current, Total: total, Label: presenter.Progress(current, total)})
}

func (p *wsPresenter) RenderScore(score, highScore int) {
	p.emit("score", scorePayload{Score: score, HighScore: highScore})
}

func (p *wsPresenter) RenderFeedback(result domain.AnswerResult) {
	p.emit("feedback", feedbackPayload{AnswerResult: result, Message: presenter.Feedback(result)})
}

func (p *wsPresenter) RenderResults(finalScore, highScore int, newRecord bool) {
	p.emit("results", resultsPayload{
		FinalScore: finalScore,
		HighScore:  highScore,
		NewRecord:  newRecord,
		Message:    presenter.Results(finalScore, newRecord),
	})
}

func (p *wsPresenter) Alert(err error) {
	p.emit("error", errorPayload{Message: err.Error()})
}
