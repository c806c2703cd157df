package vk

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.vk.com/method/"
	DefaultVersion = "5.199"
)

// Client calls the VK conversation API. It is safe for concurrent use.
type Client struct {
	Log     *zap.Logger
	HTTP    *fasthttp.Client
	BaseURL string
	Token   string
	Version string
	Timeout time.Duration
}

func NewClient(zap *zap.Logger, httpClient *fasthttp.Client, baseURL string, token string, version string, timeout time.Duration) *Client {
	return &Client{
		Log:     zap,
		HTTP:    httpClient,
		BaseURL: baseURL,
		Token:   token,
		Version: version,
		Timeout: timeout,
	}
}

type envelope[T any] struct {
	Error    *model.VKError `json:"error"`
	Response T              `json:"response"`
}

// query posts a form-encoded method call. An error payload becomes VKAccessDenied.
func query[T any](ctx context.Context, client *Client, method string, args *fasthttp.Args) (T, error) {
	var result envelope[T]

	if err := ctx.Err(); err != nil {
		return result.Response, err
	}

	args.Set("v", client.Version)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.BaseURL + method)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+client.Token)
	req.SetBody(args.QueryString())

	deadline := time.Now().Add(client.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	err := client.HTTP.DoDeadline(req, resp, deadline)
	if err != nil {
		return result.Response, fmt.Errorf("vk %s request failed: %w", method, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return result.Response, fmt.Errorf("vk %s returned http status %d", method, resp.StatusCode())
	}

	err = sonic.Unmarshal(resp.Body(), &result)
	if err != nil {
		return result.Response, fmt.Errorf("vk %s response decode failed: %w", method, err)
	}

	if result.Error != nil {
		client.Log.Warn("vk api returned error",
			zap.String("method", method),
			zap.Int("errorCode", result.Error.ErrorCode),
			zap.String("errorMsg", result.Error.ErrorMsg),
		)

		denied := model.NewVKAccessDenied(result.Error.ErrorMsg)
		denied.Err = result.Error
		return result.Response, denied
	}

	return result.Response, nil
}

// KickUser removes a user or, for a negative id, a community from the conversation.
func (client *Client) KickUser(ctx context.Context, peerId int64, memberId int64) error {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	args.Set("chat_id", strconv.FormatInt(model.LocalChatId(peerId), 10))
	args.Set("member_id", strconv.FormatInt(memberId, 10))

	_, err := query[any](ctx, client, "messages.removeChatUser", args)
	return err
}

// MuteUser puts members in read-only mode. duration is in seconds, model.PermanentMute for no expiry.
func (client *Client) MuteUser(ctx context.Context, peerId int64, memberIds []int64, duration int64) error {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	ids := make([]string, len(memberIds))
	for i, id := range memberIds {
		ids[i] = strconv.FormatInt(id, 10)
	}

	args.Set("peer_id", strconv.FormatInt(peerId, 10))
	args.Set("member_ids", strings.Join(ids, ","))
	args.Set("action", "ro")
	if duration != model.PermanentMute {
		args.Set("for", strconv.FormatInt(duration, 10))
	}

	_, err := query[any](ctx, client, "messages.changeConversationMemberRestrictions", args)
	return err
}

func (client *Client) GetConversationMembers(ctx context.Context, peerId int64, fields string) (model.VKConversationMembers, error) {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	args.Set("peer_id", strconv.FormatInt(peerId, 10))
	if fields != "" {
		args.Set("fields", fields)
	}

	return query[model.VKConversationMembers](ctx, client, "messages.getConversationMembers", args)
}

func (client *Client) SendMessage(ctx context.Context, peerId int64, text string) error {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	args.Set("peer_id", strconv.FormatInt(peerId, 10))
	args.Set("message", text)
	args.Set("disable_mentions", "1")
	args.Set("random_id", strconv.FormatInt(time.Now().UnixMilli(), 10))

	_, err := query[any](ctx, client, "messages.send", args)
	return err
}
