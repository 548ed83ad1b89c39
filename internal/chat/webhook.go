package chat

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"

	"fxbot/internal/domain"
	"fxbot/internal/rate"

	"github.com/sirupsen/logrus"
)

// SecretHeader carries the token registered with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

const maxUpdateBytes = 1 << 20

type Answerer interface {
	Answer(ctx context.Context, text string) (rate.Reply, error)
}

type Authorizer interface {
	Allow(ctx context.Context, correspondentID string) (bool, error)
}

type Submitter interface {
	Submit(msg domain.OutboundMessage) bool
}

type MessageRecorder interface {
	RecordMessage(outcome string)
}

type telegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *telegramMessage `json:"message"`
}

type telegramMessage struct {
	Chat struct {
		ID int64 `json:"id"`
	} `json:"chat"`
	Text string `json:"text"`
}

type ackResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Webhook struct {
	answerer   Answerer
	authorizer Authorizer
	submitter  Submitter
	recorder   MessageRecorder
}

// Handle acknowledges every well-formed update with 200, including ignored ones.
// Replies are queued on the Submitter, never sent inline.
func (h *Webhook) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpdateBytes)

	var upd telegramUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid update"})
		return
	}

	msg, ok := inboundFrom(upd)
	if !ok {
		writeJSON(w, http.StatusOK, ackResponse{OK: true})
		return
	}

	ctx := r.Context()
	allowed, err := h.authorizer.Allow(ctx, msg.CorrespondentID)
	if err != nil {
		logrus.WithError(err).WithField("update_id", upd.UpdateID).Error("Authorization check failed")
	}
	if !allowed {
		writeJSON(w, http.StatusOK, ackResponse{OK: true})
		return
	}

	reply, err := h.answerer.Answer(ctx, msg.Text)
	if err != nil {
		logrus.WithError(err).WithField("update_id", upd.UpdateID).Error("Failed to answer message")
		if reply.Text == "" {
			reply = rate.Reply{Text: rate.NoSnapshotText, Outcome: rate.OutcomeNoSnapshot}
		}
	}
	if h.recorder != nil {
		h.recorder.RecordMessage(string(reply.Outcome))
	}

	h.submitter.Submit(domain.OutboundMessage{Recipient: msg.CorrespondentID, Text: reply.Text})
	writeJSON(w, http.StatusOK, ackResponse{OK: true})
}

func inboundFrom(upd telegramUpdate) (domain.InboundMessage, bool) {
	if upd.Message == nil || upd.Message.Chat.ID == 0 {
		return domain.InboundMessage{}, false
	}
	return domain.InboundMessage{
		CorrespondentID: strconv.FormatInt(upd.Message.Chat.ID, 10),
		Text:            upd.Message.Text,
	}, true
}

// RequireSecret rejects requests whose SecretHeader does not match secret.
// An empty secret disables the check.
func RequireSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(SecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func NewWebhook(answerer Answerer, authorizer Authorizer, submitter Submitter, recorder MessageRecorder) *Webhook {
	return &Webhook{answerer: answerer, authorizer: authorizer, submitter: submitter, recorder: recorder}
}
