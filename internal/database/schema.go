package database

import (
	"context"
	"fmt"
)

// The shop schema has six tables and no foreign keys: references between
// them are never enforced and deletes never cascade.  The store, not the
// application, derives Service_Parts.Total_Part_Cost (a stored generated
// column) and Service_Record.Total_Cost (kept equal to the sum of the
// service's line items by triggers).
//
// Bootstrap only creates what is missing.  It never alters an existing
// table, so a shop database created by other tooling is left as it is.

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS Customer (
		Customer_ID INT PRIMARY KEY,
		Name        VARCHAR(100),
		Address     VARCHAR(255),
		Phone_No    VARCHAR(20)
	)`,
	`CREATE TABLE IF NOT EXISTS Vehicle (
		Vehicle_ID  INT PRIMARY KEY,
		Reg_No      VARCHAR(20),
		Color       VARCHAR(30),
		Mileage     INT,
		Customer_ID INT
	)`,
	`CREATE TABLE IF NOT EXISTS Mechanic (
		Mechanic_ID  INT PRIMARY KEY,
		Name         VARCHAR(100),
		Hire_Date    DATE,
		Salary       DECIMAL(10,2),
		Phone_Number VARCHAR(20)
	)`,
	`CREATE TABLE IF NOT EXISTS Spare_Parts (
		Part_ID           INT PRIMARY KEY,
		Part_Name         VARCHAR(100),
		Manufacturer      VARCHAR(100),
		Unit_Price        DECIMAL(10,2),
		Quantity_In_Stock INT
	)`,
	`CREATE TABLE IF NOT EXISTS Service_Record (
		Service_ID         INT PRIMARY KEY,
		Vehicle_ID         INT,
		Mechanic_ID        INT,
		Service_Date       DATE,
		Problem            VARCHAR(255),
		Total_Cost         DECIMAL(12,2) DEFAULT 0,
		Status             VARCHAR(30),
		Mileage_At_Service INT,
		Duration           INT
	)`,
	`CREATE TABLE IF NOT EXISTS Service_Parts (
		Service_ID      INT,
		Part_ID         INT,
		Quantity_Used   INT,
		Unit_Price      DECIMAL(10,2),
		Total_Part_Cost DECIMAL(12,2) AS (Quantity_Used * Unit_Price) STORED,
		PRIMARY KEY (Service_ID, Part_ID)
	)`,
	`CREATE TRIGGER IF NOT EXISTS trg_service_parts_ai AFTER INSERT ON Service_Parts FOR EACH ROW
		UPDATE Service_Record
		SET Total_Cost = (SELECT COALESCE(SUM(Total_Part_Cost), 0) FROM Service_Parts WHERE Service_ID = NEW.Service_ID)
		WHERE Service_ID = NEW.Service_ID`,
	`CREATE TRIGGER IF NOT EXISTS trg_service_parts_au AFTER UPDATE ON Service_Parts FOR EACH ROW
		UPDATE Service_Record
		SET Total_Cost = (SELECT COALESCE(SUM(Total_Part_Cost), 0) FROM Service_Parts WHERE Service_ID = NEW.Service_ID)
		WHERE Service_ID = NEW.Service_ID`,
	`CREATE TRIGGER IF NOT EXISTS trg_service_parts_ad AFTER DELETE ON Service_Parts FOR EACH ROW
		UPDATE Service_Record
		SET Total_Cost = (SELECT COALESCE(SUM(Total_Part_Cost), 0) FROM Service_Parts WHERE Service_ID = OLD.Service_ID)
		WHERE Service_ID = OLD.Service_ID`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS Customer (
		Customer_ID INTEGER PRIMARY KEY,
		Name        TEXT,
		Address     TEXT,
		Phone_No    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Vehicle (
		Vehicle_ID  INTEGER PRIMARY KEY,
		Reg_No      TEXT,
		Color       TEXT,
		Mileage     INTEGER,
		Customer_ID INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS Mechanic (
		Mechanic_ID  INTEGER PRIMARY KEY,
		Name         TEXT,
		Hire_Date    TEXT,
		Salary       REAL,
		Phone_Number TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Spare_Parts (
		Part_ID           INTEGER PRIMARY KEY,
		Part_Name         TEXT,
		Manufacturer      TEXT,
		Unit_Price        REAL,
		Quantity_In_Stock INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS Service_Record (
		Service_ID         INTEGER PRIMARY KEY,
		Vehicle_ID         INTEGER,
		Mechanic_ID        INTEGER,
		Service_Date       TEXT,
		Problem            TEXT,
		Total_Cost         REAL DEFAULT 0,
		Status             TEXT,
		Mileage_At_Service INTEGER,
		Duration           INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS Service_Parts (
		Service_ID      INTEGER,
		Part_ID         INTEGER,
		Quantity_Used   INTEGER,
		Unit_Price      REAL,
		Total_Part_Cost REAL GENERATED ALWAYS AS (Quantity_Used * Unit_Price) STORED,
		PRIMARY KEY (Service_ID, Part_ID)
	)`,
	`CREATE TRIGGER IF NOT EXISTS trg_service_parts_ai AFTER INSERT ON Service_Parts
	BEGIN
		UPDATE Service_Record
		SET Total_Cost = (SELECT COALESCE(SUM(Quantity_Used * Unit_Price), 0) FROM Service_Parts WHERE Service_ID = NEW.Service_ID)
		WHERE Service_ID = NEW.Service_ID;
	END`,
	`CREATE TRIGGER IF NOT EXISTS trg_service_parts_au AFTER UPDATE ON Service_Parts
	BEGIN
		UPDATE Service_Record
		SET Total_Cost = (SELECT COALESCE(SUM(Quantity_Used * Unit_Price), 0) FROM Service_Parts WHERE Service_ID = NEW.Service_ID)
		WHERE Service_ID = NEW.Service_ID;
	END`,
	`CREATE TRIGGER IF NOT EXISTS trg_service_parts_ad AFTER DELETE ON Service_Parts
	BEGIN
		UPDATE Service_Record
		SET Total_Cost = (SELECT COALESCE(SUM(Quantity_Used * Unit_Price), 0) FROM Service_Parts WHERE Service_ID = OLD.Service_ID)
		WHERE Service_ID = OLD.Service_ID;
	END`,
}

// Bootstrap creates the six shop tables and the Total_Cost triggers when
// they do not exist yet.
func Bootstrap(ctx context.Context, g *Gateway) error {
	var stmts []string
	switch g.Driver() {
	case DriverMySQL:
		stmts = mysqlSchema
	case DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("bootstrap: unsupported driver %q", g.Driver())
	}
	for i, stmt := range stmts {
		if _, err := g.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap statement %d: %w", i+1, err)
		}
	}
	return nil
}
