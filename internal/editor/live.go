package editor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"curriculum-backend/internal/resumes"
	"curriculum-backend/internal/shared/server/middleware"
	"curriculum-backend/internal/shared/server/respond"
	"curriculum-backend/internal/shared/telemetry"
	"curriculum-backend/resume/forms"
	"curriculum-backend/resume/model"
	"curriculum-backend/resume/validate"
)

const (
	writeWait       = 10 * time.Second
	maxMessageBytes = 1 << 20
)

const MsgRateLimited = "Too many requests. Please try again shortly."

// Message is one frame of the live editing protocol, in either direction.
type Message struct {
	Type string `json:"type"`

	// inbound
	Patch    *forms.Patch `json:"patch,omitempty"`
	Template string       `json:"template,omitempty"`
	Width    float64      `json:"width,omitempty"`

	// outbound
	HTML         string               `json:"html,omitempty"`
	Version      int                  `json:"version,omitempty"`
	Message      string               `json:"message,omitempty"`
	Errors       validate.FieldErrors `json:"errors,omitempty"`
	RetryAfterMs int                  `json:"retryAfterMs,omitempty"`
	FileName     string               `json:"fileName,omitempty"`
	ContentType  string               `json:"contentType,omitempty"`
	Pages        int                  `json:"pages,omitempty"`
	SizeBytes    int                  `json:"sizeBytes,omitempty"`
}

type Handler struct {
	Resumes *resumes.Service
	// Limiter and ExportRule meter exports requested over the socket. The limiter is
	// shared with the HTTP rate limit so both paths draw on the same EXPORT bucket.
	Limiter    *middleware.RateLimiter
	ExportRule middleware.RateLimitRule

	upgrader websocket.Upgrader
}

// NewHandler builds the live editing endpoint. Upgrades are accepted only from allowedOrigins;
// an empty list allows every origin.
func NewHandler(svc *resumes.Service, limiter *middleware.RateLimiter, exportRule middleware.RateLimitRule, allowedOrigins []string) *Handler {
	return &Handler{
		Resumes:    svc,
		Limiter:    limiter,
		ExportRule: exportRule,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     middleware.OriginChecker(allowedOrigins),
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/resumes/:id/live", h.live)
}

func (h *Handler) live(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	res, err := h.Resumes.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		switch {
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, resumes.ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "resume belongs to another user", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume", nil)
		}
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		telemetry.Warn("editor.upgrade_failed", map[string]any{"resume_id": resumeID, "error": err.Error()})
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageBytes)

	telemetry.Info("editor.connected", map[string]any{"resume_id": resumeID, "user_id": userID})

	sess := NewSession(res.Document, ServiceStore{Svc: h.Resumes, UserID: userID, ResumeID: resumeID})
	l := &liveConn{conn: conn, sess: sess}
	if err := l.sendState(); err != nil {
		return
	}

	ctx := c.Request.Context()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				telemetry.Warn("editor.read_failed", map[string]any{"resume_id": resumeID, "error": err.Error()})
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			if l.sendError("invalid message", nil) != nil {
				return
			}
			continue
		}

		var sendErr error
		switch msg.Type {
		case "patch":
			if msg.Patch == nil {
				sendErr = l.sendError("patch is required", nil)
				break
			}
			if err := sess.Apply(*msg.Patch); err != nil {
				sendErr = l.sendError(err.Error(), nil)
				break
			}
			sendErr = l.sendState()
		case "template":
			id := strings.TrimSpace(msg.Template)
			if !model.IsKnownTemplate(id) {
				sendErr = l.sendError("unknown template "+id, nil)
				break
			}
			if err := sess.Apply(forms.Patch{Section: forms.SectionDocument, Op: forms.OpSet, Field: "template", Value: id}); err != nil {
				sendErr = l.sendError(err.Error(), nil)
				break
			}
			sendErr = l.sendState()
		case "width":
			sess.SetWidth(msg.Width)
			sendErr = l.sendPreview()
		case "save":
			if err := sess.Save(ctx); err != nil {
				var se *SaveError
				if errors.As(err, &se) {
					sendErr = l.sendError(se.Message, se.Fields)
				} else {
					sendErr = l.sendError(MsgSaveFailed, nil)
				}
				break
			}
			sendErr = l.send(Message{Type: "saved", Version: sess.Document().Version})
		case "export":
			if ok, wait := h.Limiter.Allow(middleware.RateLimitKey(userID, middleware.ExportRateLimitGroup), h.ExportRule); !ok {
				sendErr = l.send(Message{Type: "error", Message: MsgRateLimited, RetryAfterMs: int(wait / time.Millisecond)})
				break
			}
			art, err := sess.Export(ctx)
			if err != nil {
				sendErr = l.sendError("Failed to export resume.", nil)
				break
			}
			if sendErr = l.send(Message{
				Type:        "exported",
				FileName:    art.FileName,
				ContentType: art.ContentType,
				Pages:       art.Pages,
				SizeBytes:   len(art.Bytes),
			}); sendErr != nil {
				break
			}
			sendErr = l.write(websocket.BinaryMessage, art.Bytes)
		default:
			sendErr = l.sendError("unknown message type "+msg.Type, nil)
		}
		if sendErr != nil {
			return
		}
	}
}

type liveConn struct {
	conn *websocket.Conn
	sess *Session
}

func (l *liveConn) sendState() error {
	if err := l.sendPreview(); err != nil {
		return err
	}
	return l.send(Message{Type: "field_errors", Errors: l.sess.FieldErrors()})
}

func (l *liveConn) sendPreview() error {
	html, err := l.sess.CurrentPreview()
	if err != nil {
		return l.sendError("Failed to render preview.", nil)
	}
	return l.send(Message{Type: "preview", HTML: html})
}

func (l *liveConn) sendError(message string, fields validate.FieldErrors) error {
	return l.send(Message{Type: "error", Message: message, Errors: fields})
}

func (l *liveConn) send(msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return l.write(websocket.TextMessage, raw)
}

func (l *liveConn) write(kind int, data []byte) error {
	l.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return l.conn.WriteMessage(kind, data)
}
