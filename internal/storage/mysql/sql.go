package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, seq, name, location, destination, rating, price, description,
   reviews, images, rooms, amenities, facilities, lat, lng)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  seq         = VALUES(seq),
  name        = VALUES(name),
  location    = VALUES(location),
  destination = VALUES(destination),
  rating      = VALUES(rating),
  price       = VALUES(price),
  description = VALUES(description),
  reviews     = VALUES(reviews),
  images      = VALUES(images),
  rooms       = VALUES(rooms),
  amenities   = VALUES(amenities),
  facilities  = VALUES(facilities),
  lat         = VALUES(lat),
  lng         = VALUES(lng),
  updated_at  = CURRENT_TIMESTAMP
`

const deleteHotelSQL = `DELETE FROM hotels WHERE id = ?`

// Catalog order is the admin insertion order; id breaks ties for rows
// written by concurrent seeders.
const listHotelsSQL = `
SELECT
  id, name, location, destination, rating, price, description,
  reviews, images, rooms, amenities, facilities, lat, lng
FROM hotels
ORDER BY seq, id
`
