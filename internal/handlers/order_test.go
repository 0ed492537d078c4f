package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildOrderItemsSubtotal(t *testing.T) {
	items, subtotal, err := buildOrderItems([]orderItemRequest{
		{Title: "Tee", Price: 24, Qty: 2},
		{Title: "Mug", Price: 9.5, Qty: 1},
	})
	if err != nil {
		t.Fatalf("buildOrderItems returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if subtotal != 57.5 {
		t.Fatalf("expected subtotal 57.5, got %v", subtotal)
	}
}

func TestBuildOrderItemsRejectsEmptyCart(t *testing.T) {
	if _, _, err := buildOrderItems(nil); err == nil {
		t.Fatal("expected error for empty item list")
	}
	if _, _, err := buildOrderItems([]orderItemRequest{}); err == nil {
		t.Fatal("expected error for empty item list")
	}
}

func TestBuildOrderItemsKeepsValidProductReference(t *testing.T) {
	productID := primitive.NewObjectID()

	items, _, err := buildOrderItems([]orderItemRequest{
		{ProductID: productID.Hex(), Title: "Tee", Price: 24, Qty: 2},
	})
	if err != nil {
		t.Fatalf("buildOrderItems returned error: %v", err)
	}
	if items[0].ProductID == nil || *items[0].ProductID != productID {
		t.Fatalf("expected product reference %s, got %+v", productID.Hex(), items[0].ProductID)
	}
}

func TestBuildOrderItemsDropsMalformedProductReference(t *testing.T) {
	items, subtotal, err := buildOrderItems([]orderItemRequest{
		{ProductID: "not-an-object-id", Title: "Tee", Price: 24, Qty: 2},
	})
	if err != nil {
		t.Fatalf("buildOrderItems returned error: %v", err)
	}
	if items[0].ProductID != nil {
		t.Fatal("expected malformed product reference to be dropped")
	}
	if subtotal != 48 {
		t.Fatalf("expected subtotal 48, got %v", subtotal)
	}
}
