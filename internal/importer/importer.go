package importer

import (
	"errors"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/csvimport"
)

// Kind names a mapping table used to import a CSV file.
type Kind string

const (
	KindInventory Kind = "inventory"
	KindCustomers Kind = "customers"
)

var ErrUnknownKind = errors.New("unknown import kind")

// inventoryMappings matches the voorraad export of the web app.
var inventoryMappings = []csvimport.Mapping{
	{CSVColumn: "naam", TargetField: "name", Required: true},
	{CSVColumn: "sku", TargetField: "sku", Required: true},
	{CSVColumn: "categorie", TargetField: "category"},
	{CSVColumn: "aantal", TargetField: "quantity", Transform: csvimport.ToInteger},
	{CSVColumn: "minimum voorraad", TargetField: "reorderLevel", Transform: csvimport.ToInteger},
	{CSVColumn: "inkoopprijs", TargetField: "purchasePrice", Transform: csvimport.ToNumber},
	{CSVColumn: "verkoopprijs", TargetField: "salePrice", Transform: csvimport.ToNumber},
	{CSVColumn: "btw", TargetField: "vatRate", Transform: csvimport.ToNumber},
	{CSVColumn: "locatie", TargetField: "location"},
	{CSVColumn: "leverancier", TargetField: "supplier"},
}

var customerMappings = []csvimport.Mapping{
	{CSVColumn: "naam", TargetField: "name", Required: true},
	{CSVColumn: "email", TargetField: "email"},
	{CSVColumn: "telefoon", TargetField: "phone"},
	{CSVColumn: "adres", TargetField: "address"},
	{CSVColumn: "postcode", TargetField: "postalCode"},
	{CSVColumn: "plaats", TargetField: "city"},
	{CSVColumn: "btw-nummer", TargetField: "vatNumber"},
	{CSVColumn: "zakelijk", TargetField: "isBusiness", Transform: csvimport.ToBoolean},
	{CSVColumn: "klant sinds", TargetField: "customerSince", Transform: csvimport.ToDate},
}
