package view

import "time"

// FilterSubject implements Filterable
func (c MessageCard) FilterSubject() string { return c.Message.Subject }

// FilterCounterpartyName implements Filterable
func (c MessageCard) FilterCounterpartyName() string { return c.Message.SenderName }

// FilterCounterpartyEmail implements Filterable
func (c MessageCard) FilterCounterpartyEmail() string { return c.Message.SenderEmail }

// FilterDate implements Filterable using the message's received time
func (c MessageCard) FilterDate() (time.Time, bool) {
	if c.Message.ReceivedAt == nil {
		return time.Time{}, false
	}
	return *c.Message.ReceivedAt, true
}

// FilterSubject implements Filterable
func (r OrderRow) FilterSubject() string { return r.Order.PONumber }

// FilterCounterpartyName implements Filterable
func (r OrderRow) FilterCounterpartyName() string { return r.CustomerName }

// FilterCounterpartyEmail implements Filterable
func (r OrderRow) FilterCounterpartyEmail() string { return r.SenderEmail }

// FilterDate implements Filterable using the confirmed delivery date
func (r OrderRow) FilterDate() (time.Time, bool) {
	if r.Order.DeliveryDate == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", r.Order.DeliveryDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
