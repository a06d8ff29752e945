package postgres

const listingColumns = `
	COALESCE(society_name, '') AS society_name,
	COALESCE(organisation_need, '') AS organisation_need,
	COALESCE(service, '') AS service,
	COALESCE(state, '') AS state,
	COALESCE(district, '') AS district,
	COALESCE(pincode, '') AS pincode`

const selectDistinctServices = `
	SELECT DISTINCT service
	FROM helping_societies
	WHERE service IS NOT NULL
	ORDER BY service`

const selectAllListings = `SELECT` + listingColumns + `
	FROM helping_societies`

const selectListingsByService = `SELECT` + listingColumns + `
	FROM helping_societies
	WHERE service = $1`

const searchListings = `SELECT` + listingColumns + `
	FROM helping_societies
	WHERE
		UPPER(society_name) LIKE UPPER($1) OR
		UPPER(organisation_need) LIKE UPPER($1) OR
		UPPER(service) LIKE UPPER($1) OR
		UPPER(state) LIKE UPPER($1) OR
		UPPER(district) LIKE UPPER($1) OR
		UPPER(pincode) LIKE UPPER($1)`

const countAccountsByUsernameOrEmail = `
	SELECT COUNT(*)
	FROM app_users
	WHERE username = $1 OR email = $2`

const insertAccount = `
	INSERT INTO app_users (username, email, password_hash, mobile_number)
	VALUES ($1, $2, $3, $4)`

const selectAccountByUsername = `
	SELECT id, username, password_hash
	FROM app_users
	WHERE username = $1`

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS helping_societies (
		society_name TEXT,
		organisation_need TEXT,
		service TEXT,
		state TEXT,
		district TEXT,
		pincode TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS helping_societies_service_idx ON helping_societies (service);`,
	`CREATE TABLE IF NOT EXISTS app_users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		mobile_number TEXT
	);`,
}
