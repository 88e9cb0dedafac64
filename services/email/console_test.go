package emailsvc

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/tests"
)

func TestConsoleServiceMock_SendMessages(t *testing.T) {
	conf := core.NewTestConfig()
	logger := new(testutil.Logger)
	core.ParseEmailTemplates(conf, logger)
	svc := NewConsoleServiceMock(conf, logger)

	svc.SendMessages(
		&core.EmailMessage{
			To:           []mail.Address{{Name: "Diya Singh", Address: "diya.singh@example.com"}},
			Subject:      "Payment receipt RCP008",
			TemplateName: "payment_receipt",
			TemplateData: payment.ReceiptData{
				StudentName: "Diya Singh",
				Amount:      3000,
				Mode:        payment.ModeOnline,
				Date:        "2024-07-04",
				ReceiptNo:   "RCP008",
				TotalFees:   12000,
				PaidAmount:  6000,
				Due:         6000,
			},
		},
		&core.EmailMessage{Subject: "no recipients", BodyStr: "dropped"},
		&core.EmailMessage{To: []mail.Address{{Address: "a@b.c"}}, Subject: "plain", BodyStr: "hello"},
	)

	assert.Empty(t, logger.Messages())
	sent := svc.SentMessages()
	require.Len(t, sent, 2)

	assert.Contains(t, sent[0].TextContent, "Receipt number: RCP008")
	assert.Contains(t, sent[0].TextContent, "Balance due:    6000.00")
	assert.Contains(t, sent[0].TextContent, conf.FrontendBaseURL)
	assert.Contains(t, sent[0].HTMLContent, "<strong>3000.00</strong>")

	assert.Equal(t, "hello", sent[1].TextContent)
	assert.Empty(t, sent[1].HTMLContent)
}

func TestConsoleService_format(t *testing.T) {
	conf := core.NewTestConfig()
	svc := NewConsoleServiceMock(conf, new(testutil.Logger))

	body, err := svc.format(core.EmailMessage{
		To:          []mail.Address{{Address: "a@b.c"}, {Address: "d@e.f"}},
		Subject:     "hi",
		TextContent: "text",
		HTMLContent: "<p>html</p>",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Subject: [CoachDesk] hi\r\n")
	assert.Contains(t, body, "To: <a@b.c>, <d@e.f>\r\n")
	assert.Contains(t, body, "Content-Type: text/plain")
	assert.Contains(t, body, "<p>html</p>")
}
