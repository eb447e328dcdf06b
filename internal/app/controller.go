package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"

	"trivia-client/internal/domain"
)

// DefaultFeedbackDelay is how long feedback stays on screen before the next question.
const DefaultFeedbackDelay = 3000 * time.Millisecond

// ErrClosed is returned by Next once the controller has been closed.
var ErrClosed = errors.New("controller closed")

// CategoryRepository returns the selectable categories (possibly cached).
type CategoryRepository interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
}

// QuestionFetcher requests a list of multiple-choice questions.
type QuestionFetcher interface {
	FetchQuestions(ctx context.Context, amount, category int, difficulty domain.Difficulty) ([]domain.Question, error)
}

// Presenter renders controller output. Calls come from the controller goroutine only.
type Presenter interface {
	ShowSetup()
	RenderCategories(categories []domain.Category)
	ShowQuiz()
	RenderQuestion(text string, choices []domain.AnswerChoice)
	RenderProgress(current, total int)
	RenderScore(score, highScore int)
	RenderFeedback(result domain.AnswerResult)
	RenderResults(finalScore, highScore int, newRecord bool)
	Alert(err error)
}

// Phase is the controller state.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseLoading
	PhaseAwaitingAnswer
	PhaseShowingFeedback
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseLoading:
		return "loading"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseShowingFeedback:
		return "showing-feedback"
	case PhaseFinished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// EventKind enumerates the messages that drive the controller.
type EventKind int

const (
	EventStart EventKind = iota + 1
	EventCategoriesLoaded
	EventCategoriesFailed
	EventQuestionsLoaded
	EventQuestionsFailed
	EventAnswer
	EventAdvance
	EventRestart
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventCategoriesLoaded:
		return "categories-loaded"
	case EventCategoriesFailed:
		return "categories-failed"
	case EventQuestionsLoaded:
		return "questions-loaded"
	case EventQuestionsFailed:
		return "questions-failed"
	case EventAnswer:
		return "answer"
	case EventAdvance:
		return "advance"
	case EventRestart:
		return "restart"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is a single message for the controller. Generation is set on events produced by
// asynchronous work so results of a superseded session can be recognised and dropped.
type Event struct {
	Kind       EventKind
	Generation uint64
	Setup      domain.SetupRequest
	Choice     int
	Questions  []domain.Question
	Categories []domain.Category
	Err        error
}

// StartEvent builds the event a setup form submits.
func StartEvent(req domain.SetupRequest) Event {
	return Event{Kind: EventStart, Setup: req}
}

// AnswerEvent builds the event for selecting the choice at index choice.
func AnswerEvent(choice int) Event {
	return Event{Kind: EventAnswer, Choice: choice}
}

// RestartEvent builds the event for the restart action.
func RestartEvent() Event {
	return Event{Kind: EventRestart}
}

// Options tunes a Controller. Zero values pick defaults.
type Options struct {
	FeedbackDelay time.Duration
	Clock         func() time.Time
	Rand          *rand.Rand
	Logger        *log.Logger
}

// Controller owns one quiz session and moves it through setup, questions and results.
// All state changes happen in Handle, which must be called from one goroutine (Run does this).
type Controller struct {
	categories CategoryRepository
	questions  QuestionFetcher
	scores     *HighScores
	view       Presenter

	delay    time.Duration
	now      func() time.Time
	rnd      *rand.Rand
	logger   *log.Logger
	validate *validator.Validate

	events chan Event
	ctx    context.Context
	cancel context.CancelFunc

	phase        Phase
	generation   uint64
	session      *Session
	categoryList []domain.Category
	highScore    int
	timer        *time.Timer
}

func NewController(categories CategoryRepository, questions QuestionFetcher, scores *HighScores, view Presenter, opts Options) *Controller {
	if opts.FeedbackDelay <= 0 {
		opts.FeedbackDelay = DefaultFeedbackDelay
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		categories: categories,
		questions:  questions,
		scores:     scores,
		view:       view,
		delay:      opts.FeedbackDelay,
		now:        opts.Clock,
		rnd:        opts.Rand,
		logger:     opts.Logger,
		validate:   validator.New(),
		events:     make(chan Event, 16),
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (c *Controller) Phase() Phase       { return c.phase }
func (c *Controller) Session() *Session  { return c.session }
func (c *Controller) HighScore() int     { return c.highScore }
func (c *Controller) Generation() uint64 { return c.generation }

// Post queues an event for the controller goroutine. It is safe for concurrent use and
// drops the event once the controller is closed.
func (c *Controller) Post(ev Event) {
	select {
	case c.events <- ev:
	case <-c.ctx.Done():
	}
}

// Close cancels in-flight fetches; events posted afterwards are dropped.
func (c *Controller) Close() {
	c.cancel()
}

// Open shows the setup view, reads the high score and starts loading categories.
func (c *Controller) Open() {
	c.enterSetup()
}

// Run opens the setup view and handles events until ctx is done or the controller is closed.
// Rejected events are logged and shown through the Presenter's Alert.
func (c *Controller) Run(ctx context.Context) error {
	defer c.stopTimer()
	c.Open()
	for {
		err := c.Next(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrClosed), ctx.Err() != nil:
			return nil
		default:
			c.logger.Printf("trivia: %v", err)
			// Invalid setups are alerted where they are rejected.
			if !errors.Is(err, domain.ErrInvalidSetup) {
				c.view.Alert(err)
			}
		}
	}
}

// Next waits for one event and handles it.
func (c *Controller) Next(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return ErrClosed
	case ev := <-c.events:
		return c.Handle(ev)
	}
}

// Handle applies a single event. Errors report events rejected in the current phase.
func (c *Controller) Handle(ev Event) error {
	switch ev.Kind {
	case EventStart:
		return c.start(ev.Setup)
	case EventRestart:
		c.enterSetup()
		return nil
	case EventAnswer:
		return c.answer(ev.Choice)
	case EventCategoriesLoaded, EventCategoriesFailed, EventQuestionsLoaded, EventQuestionsFailed, EventAdvance:
		if ev.Generation != c.generation {
			c.logger.Printf("trivia: dropping stale %s event (generation %d, current %d)", ev.Kind, ev.Generation, c.generation)
			return nil
		}
	default:
		return fmt.Errorf("unknown event %s", ev.Kind)
	}

	switch ev.Kind {
	case EventCategoriesLoaded:
		c.categoryList = ev.Categories
		c.view.RenderCategories(ev.Categories)
	case EventCategoriesFailed:
		c.logger.Printf("trivia: load categories: %v", ev.Err)
		c.view.Alert(ev.Err)
		c.view.RenderCategories(nil)
	case EventQuestionsLoaded:
		if c.phase != PhaseLoading {
			return fmt.Errorf("%w: questions arrived in %s", domain.ErrWrongPhase, c.phase)
		}
		c.session = NewSession(ev.Questions)
		c.view.RenderScore(0, c.highScore)
		c.present()
	case EventQuestionsFailed:
		c.logger.Printf("trivia: fetch questions: %v", ev.Err)
		c.view.Alert(ev.Err)
		c.phase = PhaseSetup
		c.view.ShowSetup()
		if c.categoryList == nil {
			// The load started with the setup view was superseded by Start.
			c.loadCategories()
		} else {
			c.view.RenderCategories(c.categoryList)
		}
	case EventAdvance:
		return c.advance()
	}
	return nil
}

func (c *Controller) enterSetup() {
	c.stopTimer()
	c.generation++
	c.phase = PhaseSetup
	c.session = nil

	if high, err := c.scores.Get(c.ctx); err != nil {
		c.logger.Printf("trivia: %v", err)
	} else {
		c.highScore = high
	}
	c.view.ShowSetup()
	c.loadCategories()
}

// loadCategories fetches categories for the current generation.
func (c *Controller) loadCategories() {
	gen := c.generation
	go func() {
		categories, err := c.categories.GetCategories(c.ctx)
		if err != nil {
			c.Post(Event{Kind: EventCategoriesFailed, Generation: gen, Err: err})
			return
		}
		c.Post(Event{Kind: EventCategoriesLoaded, Generation: gen, Categories: categories})
	}()
}

func (c *Controller) start(req domain.SetupRequest) error {
	if c.phase != PhaseSetup {
		return fmt.Errorf("%w: start in %s", domain.ErrWrongPhase, c.phase)
	}
	if err := c.validate.Struct(req); err != nil {
		err = fmt.Errorf("%w: %v", domain.ErrInvalidSetup, err)
		c.view.Alert(err)
		return err
	}

	c.generation++
	c.phase = PhaseLoading
	c.session = nil
	c.view.ShowQuiz()

	gen := c.generation
	go func() {
		questions, err := c.questions.FetchQuestions(c.ctx, req.Amount, req.Category, req.Difficulty)
		if err != nil {
			c.Post(Event{Kind: EventQuestionsFailed, Generation: gen, Err: err})
			return
		}
		c.Post(Event{Kind: EventQuestionsLoaded, Generation: gen, Questions: questions})
	}()
	return nil
}

// present shows the current question, or finishes when the list is exhausted.
func (c *Controller) present() {
	q, ok := c.session.Current()
	if !ok {
		c.finish()
		return
	}
	choices := domain.BuildChoices(q, c.rnd)
	c.phase = PhaseAwaitingAnswer
	c.view.RenderProgress(c.session.Index(), c.session.Len())
	c.view.RenderQuestion(domain.Decode(q.Text), choices)
	c.session.Present(choices, c.now())
}

func (c *Controller) answer(choice int) error {
	switch c.phase {
	case PhaseAwaitingAnswer:
	case PhaseShowingFeedback:
		return domain.ErrAnswerClosed
	default:
		return domain.ErrNoActiveQuestion
	}

	result, err := c.session.Answer(choice, c.now())
	if err != nil {
		return err
	}
	c.phase = PhaseShowingFeedback
	c.view.RenderFeedback(result)
	c.view.RenderScore(c.session.Score(), c.highScore)

	gen := c.generation
	c.timer = time.AfterFunc(c.delay, func() {
		c.Post(Event{Kind: EventAdvance, Generation: gen})
	})
	return nil
}

func (c *Controller) advance() error {
	if c.phase != PhaseShowingFeedback {
		return fmt.Errorf("%w: advance in %s", domain.ErrWrongPhase, c.phase)
	}
	c.timer = nil
	c.session.Advance()
	c.present()
	return nil
}

func (c *Controller) finish() {
	c.phase = PhaseFinished
	final := c.session.Score()

	high, record, err := c.scores.Update(c.ctx, final)
	if err != nil {
		c.logger.Printf("trivia: %v", err)
		c.view.Alert(err)
		high = c.highScore
	}
	c.highScore = high
	c.view.RenderScore(final, high)
	c.view.RenderResults(final, high, record)
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
