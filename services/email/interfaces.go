package email

// Sender is the part of the SMTP service the worker and handlers depend on,
// so tests can swap in a fake.
type Sender interface {
    SendEmail(to, subject, body string) error
}
