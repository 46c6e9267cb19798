package mysql

const insertInquirySQL = `
INSERT INTO contact_inquiries
  (id, name, email, phone, establishment, message, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

// delivered stays NULL until the relay reports back.
const markDeliverySQL = `
UPDATE contact_inquiries
SET delivered     = ?,
    delivery_note = ?,
    delivered_at  = CURRENT_TIMESTAMP(3)
WHERE id = ?
`

const getInquirySQL = `
SELECT id, name, email, phone, establishment, message, created_at, delivered, delivery_note
FROM contact_inquiries
WHERE id = ?
`
