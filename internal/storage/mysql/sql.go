package mysql

const upsertHotelPrefix = `
INSERT INTO hotels
  (id, name, location, city, country, description, price, rating, reviews, stars,
   property_type, images, amenities, room_types, lat, lng, run_id)
VALUES `

const upsertHotelRow = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

const upsertHotelOnDup = `
ON DUPLICATE KEY UPDATE
  name          = VALUES(name),
  location      = VALUES(location),
  city          = VALUES(city),
  country       = VALUES(country),
  description   = VALUES(description),
  price         = VALUES(price),
  rating        = VALUES(rating),
  reviews       = VALUES(reviews),
  stars         = VALUES(stars),
  property_type = VALUES(property_type),
  images        = VALUES(images),
  amenities     = VALUES(amenities),
  room_types    = VALUES(room_types),
  lat           = VALUES(lat),
  lng           = VALUES(lng),
  run_id        = VALUES(run_id),
  updated_at    = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectHotelCols = `
SELECT
  id, name, location, city, country, description, price, rating, reviews, stars,
  property_type, images, amenities, room_types, lat, lng
FROM hotels
`

const getHotelSQL = selectHotelCols + `WHERE id = ?`

// Ordered by first-seen so reads follow scrape order.
const listHotelsSQL = selectHotelCols + `ORDER BY seq`

const listHotelsByCitySQL = selectHotelCols + `WHERE city = ? ORDER BY seq`
