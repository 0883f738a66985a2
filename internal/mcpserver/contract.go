package mcpserver

// RecordFormatContract describes the fields and enumerations of each
// collection for LLM consumers.
const RecordFormatContract = `# Ansuz Record Format

Collections: products, orders, users, blog, categories, notifications.
Dates are RFC 3339 timestamps. New records go to the front of a collection.

## products
- id, title, image, price (number), description, category, stock (integer)
- status: active | inactive
- createdAt
- stock band: in_stock above 10, low_stock above 0, otherwise out_of_stock

## orders
- id, productName, customer, customerEmail, amount (number)
- paymentStatus: paid | pending | failed
- deliveryStatus: delivered | shipped | processing | cancelled
- createdAt

## users
- id, name, email, avatar (optional)
- role: admin | editor | user
- status: active | inactive
- createdAt

## blog
- id, title, slug, image, category, content, tags (list), author
- status: published | draft
- createdAt

## categories
- id, name, slug, description (optional), postCount (stored, not recomputed)
- createdAt

## notifications
- id, message, date
- type: info | success | warning | error
- status: read | unread

## Filters

| Collection | Fields |
|---|---|
| products | search (title, description), category |
| orders | search (productName, customer, customerEmail), status (payment or delivery) |
| users | search (name, email), role |
| blog | search (title, content, tags), category |
| categories | search (name, slug, description) |
| notifications | search (message), status |

The value ` + "`all`" + ` disables a categorical filter. Search is a
case-insensitive substring match; an empty search matches everything.
`
