// Package download fetches located media assets, validates the bytes as
// decodable images, and persists them under sanitized filenames. Each asset
// is handled independently: a failure anywhere in one asset's path is
// logged and skipped, never aborting the batch. A randomized politeness
// delay paces the transfers.
package download
