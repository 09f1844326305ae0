package connector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

const slackAPI = "https://slack.com/api"

type slackEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// NewSlack builds the slack service against the Slack Web API.
//
// Required settings: SlackSettings.BotToken (xoxb-...).
// Scopes needed: channels:manage, chat:write, users:read, users:read.email.
func NewSlack(settings config.SlackSettings, client *http.Client, tr *trace.Trace) *service.ActionRegistry {
	b := newBase("slack", client, tr)
	headers := map[string]string{
		"Authorization": "Bearer " + settings.BotToken,
		"Content-Type":  "application/json",
	}

	return service.NewActionRegistry("slack", map[string]service.ActionFunc{
		"create_channel": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			channel := strings.TrimPrefix(getString(params, "channel_name", ""), "#")

			var body struct {
				slackEnvelope
				Channel struct {
					ID string `json:"id"`
				} `json:"channel"`
			}
			_, _, err := b.doJSON(ctx, http.MethodPost, slackAPI+"/conversations.create", headers,
				map[string]interface{}{"name": channel, "is_private": false}, &body)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "slack create_channel request failed", err)
			}
			if !body.OK {
				return nil, mapSlackError(body.Error)
			}

			result := service.Result{"channel": "#" + channel, "channel_id": body.Channel.ID, "status": "created"}
			b.logSuccess(nodeID, "create_channel", params, result)
			return result, nil
		},
		"invite_user": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			email := getString(params, "email", "")
			channel := strings.TrimPrefix(getString(params, "channel_name", ""), "#")

			var lookup struct {
				slackEnvelope
				User struct {
					ID string `json:"id"`
				} `json:"user"`
			}
			lookupURL := slackAPI + "/users.lookupByEmail?email=" + url.QueryEscape(email)
			if _, _, err := b.doJSON(ctx, http.MethodGet, lookupURL, headers, nil, &lookup); err != nil {
				return nil, service.NewError(service.ErrConnectorError, "slack users.lookupByEmail request failed", err)
			}
			if !lookup.OK {
				return nil, service.NewError(service.ErrNotFound, fmt.Sprintf("no Slack user found for %s: %s", email, lookup.Error), nil)
			}

			channelID, err := findChannelID(ctx, b, headers, channel)
			if err != nil {
				return nil, err
			}

			var invite slackEnvelope
			if _, _, err := b.doJSON(ctx, http.MethodPost, slackAPI+"/conversations.invite", headers,
				map[string]interface{}{"channel": channelID, "users": lookup.User.ID}, &invite); err != nil {
				return nil, service.NewError(service.ErrConnectorError, "slack conversations.invite request failed", err)
			}
			if !invite.OK && invite.Error != "already_in_channel" {
				return nil, mapSlackError(invite.Error)
			}

			result := service.Result{"email": email, "channel": "#" + channel, "status": "invited"}
			b.logSuccess(nodeID, "invite_user", params, result)
			return result, nil
		},
		"send_message": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			channel := strings.TrimPrefix(getString(params, "channel_name", ""), "#")
			message := getString(params, "message", "")

			var body slackEnvelope
			_, _, err := b.doJSON(ctx, http.MethodPost, slackAPI+"/chat.postMessage", headers,
				map[string]interface{}{"channel": "#" + channel, "text": message}, &body)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "slack chat.postMessage request failed", err)
			}
			if !body.OK {
				return nil, mapSlackError(body.Error)
			}

			result := service.Result{"channel": "#" + channel, "message": message, "status": "sent"}
			b.logSuccess(nodeID, "send_message", params, result)
			return result, nil
		},
	})
}

// findChannelID looks up a channel ID by name, paginating through
// conversations.list until it either finds a match or exhausts the cursor.
func findChannelID(ctx context.Context, b *base, headers map[string]string, channelName string) (string, error) {
	cursor := ""
	for {
		listURL := slackAPI + "/conversations.list?types=public_channel,private_channel&limit=200"
		if cursor != "" {
			listURL += "&cursor=" + url.QueryEscape(cursor)
		}

		var page struct {
			slackEnvelope
			Channels []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"channels"`
			ResponseMetadata struct {
				NextCursor string `json:"next_cursor"`
			} `json:"response_metadata"`
		}
		if _, _, err := b.doJSON(ctx, http.MethodGet, listURL, headers, nil, &page); err != nil {
			return "", service.NewError(service.ErrConnectorError, "slack conversations.list request failed", err)
		}

		for _, ch := range page.Channels {
			if ch.Name == channelName {
				return ch.ID, nil
			}
		}
		if page.ResponseMetadata.NextCursor == "" {
			break
		}
		cursor = page.ResponseMetadata.NextCursor
	}
	return "", service.NewError(service.ErrNotFound, "slack channel #"+channelName+" not found", nil)
}

var slackErrorMapping = map[string]struct {
	message string
	kind    service.ErrorKind
}{
	"name_taken":     {"channel already exists", service.ErrAlreadyExists},
	"ratelimited":    {"slack rate limit hit", service.ErrRateLimit},
	"not_in_channel": {"bot is not in the channel", service.ErrPermissionDenied},
	"channel_not_found": {"channel not found", service.ErrNotFound},
	"missing_scope":  {"bot missing required Slack scope", service.ErrPermissionDenied},
}

func mapSlackError(code string) error {
	if mapped, ok := slackErrorMapping[code]; ok {
		return service.NewError(mapped.kind, mapped.message, nil)
	}
	return service.NewError(service.ErrConnectorError, "slack API error: "+code, nil)
}
