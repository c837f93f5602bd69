package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestNewSESSender_NilClient(t *testing.T) {
	assert.Nil(t, NewSESSender(nil, SESConfig{}, nil))
}

func TestSESSender_SendBuildsInput(t *testing.T) {
	client := &fakeSES{}
	sender := NewSESSender(client, SESConfig{FromEmail: "noreply@mikeyoung.ai", FromName: "mikeyoung.ai"}, nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "hello@mikeyoung.ai",
		ReplyTo: "ada@example.com",
		Subject: "New inquiry",
		Body:    "plain body",
	})
	require.NoError(t, err)
	require.NotNil(t, client.input)

	assert.Equal(t, "mikeyoung.ai <noreply@mikeyoung.ai>", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, []string{"hello@mikeyoung.ai"}, client.input.Destination.ToAddresses)
	assert.Equal(t, []string{"ada@example.com"}, client.input.ReplyToAddresses)
	assert.Equal(t, "New inquiry", aws.ToString(client.input.Content.Simple.Subject.Data))
	assert.Equal(t, "plain body", aws.ToString(client.input.Content.Simple.Body.Text.Data))
	assert.Nil(t, client.input.Content.Simple.Body.Html)
}

func TestSESSender_FromOverride(t *testing.T) {
	client := &fakeSES{}
	sender := NewSESSender(client, SESConfig{FromEmail: "default@example.com"}, nil)

	require.NoError(t, sender.Send(context.Background(), EmailMessage{
		From:    "Studio <studio@example.com>",
		To:      "to@example.com",
		Subject: "s",
		Body:    "b",
	}))
	assert.Equal(t, "Studio <studio@example.com>", aws.ToString(client.input.FromEmailAddress))
}

func TestSESSender_SendError(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	sender := NewSESSender(client, SESConfig{FromEmail: "a@example.com"}, nil)

	err := sender.Send(context.Background(), EmailMessage{To: "b@example.com", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.err)
}
