package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

var replyMailTmpl = template.Must(template.New("reply").Parse(`
<p><strong>{{.ActorName}}</strong> 回复了你的评论：</p>
<blockquote>{{.ReplyContent}}</blockquote>
<p>你的原评论：</p>
<blockquote>{{.OriginalContent}}</blockquote>
<p><a href="{{.Link}}">点击查看完整讨论</a></p>
`))

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: 墨屿通讯员 <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		}
	}()
}

// SendReplyNotification 有人回复评论时给被回复者发邮件提醒。
// 收件人没有邮箱（QQ 登录）时静默跳过。
func (s *MailService) SendReplyNotification(email, actorName, replyContent, originalContent, link string) {
	if email == "" {
		return
	}

	var buf bytes.Buffer
	err := replyMailTmpl.Execute(&buf, map[string]string{
		"ActorName":       actorName,
		"ReplyContent":    replyContent,
		"OriginalContent": originalContent,
		"Link":            link,
	})
	if err != nil {
		log.Printf("Error rendering reply notification email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "💬 "+actorName+" 回复了你的评论", buf.String())
}
