package simulator

import (
	"context"

	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

func newSlackService(state *simstate.State, tr *trace.Trace) *service.ActionRegistry {
	b := &base{name: "slack", state: state, tr: tr}

	return service.NewActionRegistry("slack", map[string]service.ActionFunc{
		"create_channel": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			channel := getString(params, "channel_name", "#general")
			state.SlackChannels[channel] = []string{}

			result := service.Result{"channel": channel, "status": "created"}
			b.logSuccess(nodeID, "create_channel", params, result)
			return result, nil
		},
		"invite_user": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			email := getString(params, "email", "")
			channel := getString(params, "channel_name", "#general")

			if email != "" && !state.HasGoogleAccount(email) {
				return nil, precondition("no Google account found for " + email + " — provision account first")
			}

			state.AddSlackUser(email)
			if members, ok := state.SlackChannels[channel]; ok {
				state.SlackChannels[channel] = append(members, email)
			}

			result := service.Result{"email": email, "channel": channel, "status": "invited"}
			b.logSuccess(nodeID, "invite_user", params, result)
			return result, nil
		},
		"send_message": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			result := service.Result{
				"channel": getString(params, "channel_name", "#general"),
				"message": getString(params, "message", ""),
				"status":  "sent",
			}
			b.logSuccess(nodeID, "send_message", params, result)
			return result, nil
		},
	})
}
