package antispam

import (
	"fmt"
	"sync"
	"time"

	"github.com/Brawl345/raven/logger"
	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
	"golang.org/x/time/rate"
)

var log = logger.New("antispam")

// Idle senders are forgotten once this many are tracked.
const maxTracked = 4096

var warnings = map[model.Language]string{
	model.LanguageFrench:  "🚫 %s, merci de ralentir ! Les messages trop rapides seront supprimés.",
	model.LanguageEnglish: "🚫 %s, please slow down! Messages sent too fast will be removed.",
}

type sender struct {
	limiter *rate.Limiter
	warned  bool
}

// Watcher rate-limits every group member with a token bucket. The first
// message over the limit earns a warning; the rest are deleted when the bot
// has admin rights.
type Watcher struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu      sync.Mutex
	senders map[string]*sender
}

func New(perSecond float64, burst int) *Watcher {
	return &Watcher{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
		senders: make(map[string]*sender),
	}
}

func (*Watcher) Name() string {
	return "antispam"
}

// allow records one message and reports whether it is within the limit and
// whether the sender has to be warned.
func (w *Watcher) allow(key string) (allowed, warn bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if len(w.senders) >= maxTracked {
		w.sweep(now)
	}

	s, ok := w.senders[key]
	if !ok {
		s = &sender{limiter: rate.NewLimiter(w.limit, w.burst)}
		w.senders[key] = s
	}

	if s.limiter.AllowN(now, 1) {
		s.warned = false
		return true, false
	}
	if s.warned {
		return false, false
	}
	s.warned = true
	return false, true
}

func (w *Watcher) sweep(now time.Time) {
	for key, s := range w.senders {
		if s.limiter.TokensAt(now) >= float64(w.burst) {
			delete(w.senders, key)
		}
	}
}

func (w *Watcher) Watch(c *plugin.Context) error {
	ev := c.Event
	if !ev.IsGroup() || !c.Chat.Antispam || ev.SenderID == "" {
		return nil
	}
	if c.IsAdmin || c.IsOwner {
		return nil
	}

	allowed, warn := w.allow(ev.ChatID + ":" + ev.SenderID)
	if allowed {
		return nil
	}

	log.Debug().
		Str("chat_id", ev.ChatID).
		Str("user_id", ev.SenderID).
		Bool("warn", warn).
		Msg("Sender is over the rate limit")

	if c.IsBotAdmin {
		if err := c.Conn.Delete(c, ev); err != nil {
			return fmt.Errorf("deleting spam: %w", err)
		}
	}
	if !warn {
		return nil
	}

	warning, ok := warnings[c.Language()]
	if !ok {
		warning = warnings[model.DefaultLanguage]
	}
	return c.Conn.Send(c, ev.ChatID, fmt.Sprintf(warning, "<b>"+utils.Escape(ev.SenderName)+"</b>"))
}
